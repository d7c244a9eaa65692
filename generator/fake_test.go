package generator

import (
	"context"
	"errors"
)

type reply struct {
	text string
	err  error
}

// scriptedLLM returns its replies in order and records every prompt.
type scriptedLLM struct {
	replies []reply
	prompts []Prompt
}

func (s *scriptedLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.prompts = append(s.prompts, p)
	if len(s.prompts) > len(s.replies) {
		return "", errors.New("unexpected call")
	}
	r := s.replies[len(s.prompts)-1]
	return r.text, r.err
}
