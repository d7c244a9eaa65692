package generator

import "fmt"

// History 是只追加的线性版本列表，带一个游标。
// 为空时游标为 -1，否则始终在 [0, Len()-1] 内。
type History struct {
	entries []Entry
	cursor  int
}

func NewHistory() *History {
	return &History{cursor: -1}
}

// Append 在末尾追加并把游标移到新条目。
func (h *History) Append(entry Entry) int {
	h.entries = append(h.entries, entry)
	h.cursor = len(h.entries) - 1
	return h.cursor
}

func (h *History) Current() (Entry, bool) {
	if h.cursor < 0 {
		return Entry{}, false
	}
	return h.entries[h.cursor], true
}

// Move 把游标移动 -1 或 +1；越界或其他步长都会被拒绝。
func (h *History) Move(delta int) bool {
	if delta != -1 && delta != 1 {
		return false
	}
	next := h.cursor + delta
	if h.cursor < 0 || next < 0 || next >= len(h.entries) {
		return false
	}
	h.cursor = next
	return true
}

// EditCurrent 就地覆盖当前条目的一个字段，这是修改已有版本的唯一途径。
func (h *History) EditCurrent(field Field, value string) (Entry, error) {
	if h.cursor < 0 {
		return Entry{}, ErrNoCurrentEntry
	}
	if field != FieldBrief && field != FieldCitation {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	h.entries[h.cursor] = h.entries[h.cursor].with(field, value)
	return h.entries[h.cursor], nil
}

// Edit 在 EditCurrent 之前校验操作员看到的版本号。
func (h *History) Edit(index int, field Field, value string) (Entry, error) {
	if h.cursor < 0 {
		return Entry{}, ErrNoCurrentEntry
	}
	if index != h.cursor {
		return Entry{}, fmt.Errorf("%w: edited version %d, current is %d", ErrStaleVersion, index+1, h.cursor+1)
	}
	return h.EditCurrent(field, value)
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) At(i int) (Entry, bool) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// Entries 按顺序返回所有版本的副本。
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}
