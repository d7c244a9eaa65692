package publisher

import (
	"errors"
	"strings"

	"award_vetter/generator"
)

var ErrEmptyBrief = errors.New("cannot accept an entry with an empty justification")

// Kind tags an Item as a brief or a citation.
type Kind string

const (
	KindBrief    Kind = "brief"
	KindCitation Kind = "citation"
)

// citationSuffix 只用于显示，区分类型靠 Kind。
const citationSuffix = " (CITATION)"

// Item is one accepted text awaiting export.
type Item struct {
	Kind    Kind
	Subject generator.Subject
	Text    string
}

// DisplayName is the name as printed in the document.
func (i Item) DisplayName() string {
	if i.Kind == KindCitation {
		return i.Subject.Name + citationSuffix
	}
	return i.Subject.Name
}

// ItemsFor flattens an entry into its brief item and, when present, its
// citation item.
func ItemsFor(e generator.Entry) []Item {
	items := []Item{{Kind: KindBrief, Subject: e.Subject, Text: e.Brief}}
	if e.Citation != "" {
		items = append(items, Item{Kind: KindCitation, Subject: e.Subject, Text: e.Citation})
	}
	return items
}

// Batch is the session's list of accepted items.
type Batch struct {
	items []Item
}

// Accept appends the items of e and returns them.
func (b *Batch) Accept(e generator.Entry) ([]Item, error) {
	if strings.TrimSpace(e.Brief) == "" {
		return nil, ErrEmptyBrief
	}
	items := ItemsFor(e)
	b.items = append(b.items, items...)
	return items, nil
}

// Contains 判断同一军衔和姓名的简述是否已被接受。
func (b *Batch) Contains(e generator.Entry) bool {
	for _, it := range b.items {
		if it.Kind == KindBrief && it.Subject.Rank == e.Subject.Rank && it.Subject.Name == e.Subject.Name {
			return true
		}
	}
	return false
}

func (b *Batch) Items() []Item {
	return append([]Item(nil), b.items...)
}

func (b *Batch) Len() int {
	return len(b.items)
}

func (b *Batch) Clear() {
	b.items = nil
}
