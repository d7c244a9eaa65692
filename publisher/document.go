package publisher

import (
	"fmt"
	"strings"
)

// DocumentTitle heads every exported document.
const DocumentTitle = "Award Justifications"

// Usable page width in twips: US Letter (8.5in) minus two 0.5in margins.
const pageWidth = 10800

// Font sizes in half-points.
const (
	sizeName  = 24
	sizeBody  = 22
	sizeStats = 20
)

// Paragraph is one line of a table cell.
type Paragraph struct {
	Text   string
	Bold   bool
	Size   int
	Indent int
}

// Cell is a table cell with a fixed width in twips.
type Cell struct {
	Width      int
	Paragraphs []Paragraph
}

// Table is a single-row table rendered for one item.
type Table struct {
	Cells []Cell
}

// Block is a table, or a blank spacer paragraph when Table is nil.
type Block struct {
	Table *Table
}

func (b Block) IsSpacer() bool { return b.Table == nil }

// Document is the layout of an export, independent of the file format.
type Document struct {
	Title  string
	Blocks []Block
}

// Layout arranges items into one table each, separated by a single spacer.
// Brief items of extended awards get a three column table with a stats
// column; everything else gets two columns.
func Layout(title string, items []Item, extended func(award string) bool) Document {
	doc := Document{Title: title}
	for i, it := range items {
		var t Table
		if it.Kind == KindBrief && extended != nil && extended(it.Subject.Award) {
			t = threeColumn(it)
		} else {
			t = twoColumn(it)
		}
		doc.Blocks = append(doc.Blocks, Block{Table: &t})
		if i < len(items)-1 {
			doc.Blocks = append(doc.Blocks, Block{})
		}
	}
	return doc
}

func heading(it Item) string {
	name := strings.TrimSpace(fmt.Sprintf("%s %s", it.Subject.Rank, it.DisplayName()))
	if it.Kind == KindCitation {
		return name
	}
	return strings.TrimSpace(fmt.Sprintf("%s - %s", name, it.Subject.Award))
}

func threeColumn(it Item) Table {
	return Table{Cells: []Cell{
		{Width: pageWidth * 20 / 100, Paragraphs: []Paragraph{{Text: heading(it), Bold: true, Size: sizeBody}}},
		{Width: pageWidth * 50 / 100, Paragraphs: lines(it.Text, sizeBody)},
		{Width: pageWidth * 30 / 100, Paragraphs: statsBlock(it)},
	}}
}

func twoColumn(it Item) Table {
	return Table{Cells: []Cell{
		{Width: pageWidth * 30 / 100, Paragraphs: []Paragraph{{Text: heading(it), Bold: true, Size: sizeName}}},
		{Width: pageWidth * 70 / 100, Paragraphs: lines(it.Text, sizeBody)},
	}}
}

func lines(text string, size int) []Paragraph {
	var out []Paragraph
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		out = append(out, Paragraph{Text: l, Size: size})
	}
	return out
}

func statsBlock(it Item) []Paragraph {
	s := it.Subject.Stats
	var out []Paragraph
	add := func(label, v string) {
		if v != "" {
			out = append(out, Paragraph{Text: label + ": " + v, Size: sizeStats})
		}
	}
	add("IPPT", s.IPPT)
	add("BMI", s.BMI)
	add("ATP", s.ATP)

	var prev []string
	for _, a := range strings.Split(s.PreviousAwards, ",") {
		if a = strings.TrimSpace(a); a != "" {
			prev = append(prev, a)
		}
	}
	if len(prev) > 0 {
		out = append(out, Paragraph{Size: sizeStats}, Paragraph{Text: "AWARDS:", Size: sizeStats})
		for _, a := range prev {
			out = append(out, Paragraph{Text: "- " + a, Size: sizeStats, Indent: 360})
		}
	}
	if len(out) == 0 {
		out = append(out, Paragraph{Size: sizeStats})
	}
	return out
}
