package generator

import (
	"context"
	"errors"
)

// ErrMissingCredential 在未配置 API key 时返回，不会发起任何网络请求。
var ErrMissingCredential = errors.New("llm api key missing; set llm.api_key or VETTER_LLM_API_KEY")

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的单个模型配置。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

type missingCredentialLLM struct{}

func (missingCredentialLLM) Complete(context.Context, Prompt) (string, error) {
	return "", ErrMissingCredential
}

// Unconfigured 返回一个每次调用都报 ErrMissingCredential 的客户端。
func Unconfigured() LLMClient {
	return missingCredentialLLM{}
}
