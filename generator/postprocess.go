package generator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var ErrEmptyOutput = errors.New("model returned empty text")

// PlainText 把模型输出压平成纯文本。模型有时会忽略"不要格式"的要求，
// 所以按 Markdown 解析后只保留文字：去掉强调符号和标题井号，转义字符与实体还原，
// 无序列表统一为 "- "，有序列表保留编号，段落之间空一行。
func PlainText(raw string) (string, error) {
	src := []byte(strings.TrimSpace(raw))
	if len(src) == 0 {
		return "", ErrEmptyOutput
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var (
		blocks []string
		cur    strings.Builder
	)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if entering {
				cur.Reset()
				return ast.WalkContinue, nil
			}
			line := strings.TrimSpace(cur.String())
			if line == "" {
				return ast.WalkContinue, nil
			}
			if item, ok := n.Parent().(*ast.ListItem); ok && item.FirstChild() == n {
				line = listMarker(item) + line
			}
			blocks = append(blocks, line)
		case *ast.Text:
			if entering {
				seg := node.Segment.Value(src)
				if _, code := n.Parent().(*ast.CodeSpan); !code && !node.IsRaw() {
					seg = unescape(seg)
				}
				cur.Write(seg)
				if node.SoftLineBreak() || node.HardLineBreak() {
					cur.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				cur.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				cur.Write(node.URL(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				var code strings.Builder
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					code.Write(seg.Value(src))
				}
				if s := strings.TrimSpace(code.String()); s != "" {
					blocks = append(blocks, s)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	out := strings.Join(blocks, "\n\n")
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

// unescape 与 HTML 渲染器的处理一致：先去掉反斜杠转义，再解析数字与命名实体。
func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

// listMarker 返回列表项前缀；有序列表按 Start 加上项的位置编号。
func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "- "
	}
	n := list.Start
	for sib := item.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
		n++
	}
	return strconv.Itoa(n) + ". "
}

// WordCount 按空白分词计数。
func WordCount(s string) int {
	return len(strings.Fields(s))
}
