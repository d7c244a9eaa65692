package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"award_vetter/logger"
)

// GenerationError 表示所有已配置的模型都失败了。
type GenerationError struct {
	Primary   error
	Secondary error
}

func (e *GenerationError) Error() string {
	if e.Secondary == nil {
		return fmt.Sprintf("generation failed: %v", e.Primary)
	}
	return fmt.Sprintf("generation failed: primary: %v; secondary: %v", e.Primary, e.Secondary)
}

func (e *GenerationError) Unwrap() []error {
	if e.Secondary == nil {
		return []error{e.Primary}
	}
	return []error{e.Primary, e.Secondary}
}

// FallbackLLM 先调用 Primary，失败后才调用 Secondary，不再重试。
// Timeout 作用于每一次调用，两次调用各自从调用方的 ctx 派生期限。
type FallbackLLM struct {
	Primary   LLMClient
	Secondary LLMClient
	Timeout   time.Duration
	log       *logger.Logger
}

// NewFallbackLLM 组装主模型与可选的备用模型；timeout 为 0 表示不设单次期限。
func NewFallbackLLM(primary, secondary LLMClient, timeout time.Duration, log *logger.Logger) (*FallbackLLM, error) {
	if primary == nil {
		return nil, errors.New("primary llm client is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FallbackLLM{Primary: primary, Secondary: secondary, Timeout: timeout, log: log}, nil
}

func (f *FallbackLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	out, err := f.attempt(ctx, f.Primary, prompt)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrMissingCredential) {
		return "", err
	}
	// 调用方已取消时不再尝试备用模型。
	if f.Secondary == nil || ctx.Err() != nil {
		return "", &GenerationError{Primary: err}
	}
	f.log.Warn("primary model failed, falling back", "error", err)

	out, err2 := f.attempt(ctx, f.Secondary, prompt)
	if err2 != nil {
		f.log.Error("secondary model failed", "error", err2)
		return "", &GenerationError{Primary: err, Secondary: err2}
	}
	return out, nil
}

func (f *FallbackLLM) attempt(ctx context.Context, c LLMClient, prompt Prompt) (string, error) {
	if f.Timeout <= 0 {
		return c.Complete(ctx, prompt)
	}
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	return c.Complete(ctx, prompt)
}
