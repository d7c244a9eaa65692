package generator

import (
	"context"
	"fmt"
	"strings"
)

// Session 保存单个操作员的生成历史，并驱动 Agent 生成与修改。
type Session struct {
	ID      string
	History *History
	agent   *Agent
}

// NewSession 创建一个历史为空的会话。
func NewSession(id string, agent *Agent) *Session {
	return &Session{
		ID:      id,
		History: NewHistory(),
		agent:   agent,
	}
}

// Propose 根据表单生成第一个版本并设为当前版本。
func (s *Session) Propose(ctx context.Context, form Form) (Entry, error) {
	entry, err := s.agent.Draft(ctx, form)
	if err != nil {
		return Entry{}, err
	}
	s.History.Append(entry)
	return entry, nil
}

// Revise 按修改意见重新生成当前版本的一个字段，结果追加为新版本。
func (s *Session) Revise(ctx context.Context, field Field, instructions string) (Entry, error) {
	cur, ok := s.History.Current()
	if !ok {
		return Entry{}, ErrNoCurrentEntry
	}
	entry, err := s.agent.Revise(ctx, cur, field, instructions)
	if err != nil {
		return Entry{}, err
	}
	s.History.Append(entry)
	return entry, nil
}

// Edit 就地修改 index 对应的版本；index 必须是当前版本。
func (s *Session) Edit(index int, field Field, value string) (Entry, error) {
	return s.History.Edit(index, field, value)
}

func (s *Session) Move(delta int) bool {
	return s.History.Move(delta)
}

func (s *Session) Current() (Entry, bool) {
	return s.History.Current()
}

// SaveEdits 把页面上尚未保存的文本写回当前版本，只写入内容有变化的字段，
// 返回写入的字段数。没有变化时不校验 index。
func (s *Session) SaveEdits(index int, edits map[Field]string) (int, error) {
	cur, ok := s.History.Current()
	if !ok {
		return 0, ErrNoCurrentEntry
	}
	changed := make(map[Field]string)
	for _, f := range []Field{FieldBrief, FieldCitation} {
		value, ok := edits[f]
		if !ok {
			continue
		}
		// 浏览器提交的文本框使用 CRLF 换行
		value = strings.ReplaceAll(value, "\r\n", "\n")
		if value != cur.Text(f) {
			changed[f] = value
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}
	if index != s.History.Cursor() {
		return 0, fmt.Errorf("%w: edited version %d, current is %d", ErrStaleVersion, index+1, s.History.Cursor()+1)
	}
	for _, f := range []Field{FieldBrief, FieldCitation} {
		if value, ok := changed[f]; ok {
			if _, err := s.History.EditCurrent(f, value); err != nil {
				return 0, err
			}
		}
	}
	return len(changed), nil
}
