package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	words := len(strings.Fields(prompt.User))
	return fmt.Sprintf("Being a dedicated serviceman, this placeholder text was produced offline from a %d-word prompt. Replace it with a configured model.", words), nil
}
