package publisher

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DocxContentType is the MIME type of a WordprocessingML package.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Page geometry in twips.
const (
	pageW      = 12240
	pageH      = 15840
	marginSide = 720
	marginEnd  = 1080
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:eastAsia="Arial" w:cs="Arial"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/>` +
	`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:spacing w:after="240"/><w:jc w:val="center"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="40"/><w:szCs w:val="40"/></w:rPr></w:style>` +
	`</w:styles>`

type xDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    xBody    `xml:"w:body"`
}

// Body children keep their order; each value names itself via XMLName.
type xBody struct {
	Content []any
}

type xVal struct {
	Val string `xml:"w:val,attr"`
}

type xP struct {
	XMLName xml.Name `xml:"w:p"`
	PPr     *xPPr    `xml:"w:pPr,omitempty"`
	Runs    []xR     `xml:"w:r"`
}

type xPPr struct {
	Style *xVal `xml:"w:pStyle,omitempty"`
	Ind   *xInd `xml:"w:ind,omitempty"`
}

type xInd struct {
	Left int `xml:"w:left,attr"`
}

type xR struct {
	RPr *xRPr `xml:"w:rPr,omitempty"`
	T   xT    `xml:"w:t"`
}

type xRPr struct {
	B  *struct{} `xml:"w:b,omitempty"`
	Sz *xVal     `xml:"w:sz,omitempty"`
}

type xT struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type xTbl struct {
	XMLName xml.Name `xml:"w:tbl"`
	Pr      xTblPr   `xml:"w:tblPr"`
	Grid    xGrid    `xml:"w:tblGrid"`
	Rows    []xTr    `xml:"w:tr"`
}

type xTblPr struct {
	W       xWidth   `xml:"w:tblW"`
	Borders xBorders `xml:"w:tblBorders"`
	Layout  xType    `xml:"w:tblLayout"`
}

type xWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xType struct {
	Type string `xml:"w:type,attr"`
}

type xBorders struct {
	Top     xBorder `xml:"w:top"`
	Left    xBorder `xml:"w:left"`
	Bottom  xBorder `xml:"w:bottom"`
	Right   xBorder `xml:"w:right"`
	InsideH xBorder `xml:"w:insideH"`
	InsideV xBorder `xml:"w:insideV"`
}

type xBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type xGrid struct {
	Cols []xGridCol `xml:"w:gridCol"`
}

type xGridCol struct {
	W int `xml:"w:w,attr"`
}

type xTr struct {
	Cells []xTc `xml:"w:tc"`
}

type xTc struct {
	Pr xTcPr `xml:"w:tcPr"`
	Ps []xP  `xml:"w:p"`
}

type xTcPr struct {
	W xWidth `xml:"w:tcW"`
}

type xSectPr struct {
	XMLName xml.Name `xml:"w:sectPr"`
	PgSz    xPgSz    `xml:"w:pgSz"`
	PgMar   xPgMar   `xml:"w:pgMar"`
}

type xPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// WriteDocx renders doc as a .docx package to w.
func WriteDocx(w io.Writer, doc Document) error {
	body, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", body},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func marshalDocument(doc Document) ([]byte, error) {
	x := xDocument{NS: nsW}
	if doc.Title != "" {
		x.Body.Content = append(x.Body.Content, xP{
			PPr:  &xPPr{Style: &xVal{Val: "Title"}},
			Runs: []xR{run(Paragraph{Text: doc.Title})},
		})
	}
	for _, b := range doc.Blocks {
		if b.IsSpacer() {
			x.Body.Content = append(x.Body.Content, xP{})
			continue
		}
		x.Body.Content = append(x.Body.Content, table(*b.Table))
	}
	x.Body.Content = append(x.Body.Content, xSectPr{
		PgSz:  xPgSz{W: pageW, H: pageH},
		PgMar: xPgMar{Top: marginEnd, Right: marginSide, Bottom: marginEnd, Left: marginSide, Header: 720, Footer: 720},
	})

	out, err := xml.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func table(t Table) xTbl {
	single := xBorder{Val: "single", Sz: 4, Color: "000000"}
	x := xTbl{Pr: xTblPr{
		W:       xWidth{Type: "dxa"},
		Borders: xBorders{Top: single, Left: single, Bottom: single, Right: single, InsideH: single, InsideV: single},
		Layout:  xType{Type: "fixed"},
	}}
	row := xTr{}
	for _, c := range t.Cells {
		x.Pr.W.W += c.Width
		x.Grid.Cols = append(x.Grid.Cols, xGridCol{W: c.Width})
		tc := xTc{Pr: xTcPr{W: xWidth{W: c.Width, Type: "dxa"}}}
		for _, p := range c.Paragraphs {
			tc.Ps = append(tc.Ps, paragraph(p))
		}
		if len(tc.Ps) == 0 {
			tc.Ps = append(tc.Ps, xP{})
		}
		row.Cells = append(row.Cells, tc)
	}
	x.Rows = []xTr{row}
	return x
}

func paragraph(p Paragraph) xP {
	x := xP{}
	if p.Indent > 0 {
		x.PPr = &xPPr{Ind: &xInd{Left: p.Indent}}
	}
	if p.Text != "" {
		x.Runs = []xR{run(p)}
	}
	return x
}

func run(p Paragraph) xR {
	r := xR{T: xT{Text: p.Text}}
	if strings.TrimSpace(p.Text) != p.Text {
		r.T.Space = "preserve"
	}
	if p.Bold || p.Size > 0 {
		r.RPr = &xRPr{}
		if p.Bold {
			r.RPr.B = &struct{}{}
		}
		if p.Size > 0 {
			r.RPr.Sz = &xVal{Val: fmt.Sprint(p.Size)}
		}
	}
	return r
}
