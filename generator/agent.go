package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"award_vetter/awards"
)

// Agent 负责把表单和修改意见转换成条目。
type Agent struct {
	llm     LLMClient
	catalog *awards.Catalog
	now     func() time.Time
}

func NewAgent(llm LLMClient, catalog *awards.Catalog) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if catalog == nil {
		catalog = awards.Default()
	}
	return &Agent{llm: llm, catalog: catalog, now: time.Now}, nil
}

func (a *Agent) Catalog() *awards.Catalog {
	return a.catalog
}

// Draft 根据表单生成首个条目：简述，以及扩展奖项需要的嘉奖词。
// 任一步失败都不产生条目。
func (a *Agent) Draft(ctx context.Context, form Form) (Entry, error) {
	if err := form.Validate(); err != nil {
		return Entry{}, err
	}
	subject := form.Subject()

	brief, err := a.complete(ctx, BuildBriefPrompt(BriefRequest{
		Role:          form.RoleName(),
		Unit:          subject.Unit,
		Award:         subject.Award,
		Rank:          subject.Rank,
		FullName:      subject.Name,
		PreferredName: form.Preferred(),
		Rule:          a.rule(form),
		Examples:      a.catalog.FormatExamples(subject.Award),
		Draft:         form.Draft,
	}))
	if err != nil {
		return Entry{}, fmt.Errorf("generate brief: %w", err)
	}

	var citation string
	if a.catalog.IsExtended(subject.Award) {
		source := form.CitationDraft
		if strings.TrimSpace(source) == "" {
			source = form.Draft
		}
		citation, err = a.complete(ctx, BuildCitationPrompt(CitationRequest{
			Rank:     subject.Rank,
			FullName: subject.Name,
			Context:  source,
			Examples: a.catalog.FormatCitationExamples(subject.Award),
		}))
		if err != nil {
			return Entry{}, fmt.Errorf("generate citation: %w", err)
		}
	}

	return Entry{
		Brief:     brief,
		Citation:  citation,
		Subject:   subject,
		CreatedAt: a.now(),
	}, nil
}

// Revise 按修改意见重写 prev 的一个字段，Subject 和另一个字段保持不变。
func (a *Agent) Revise(ctx context.Context, prev Entry, field Field, instructions string) (Entry, error) {
	if strings.TrimSpace(instructions) == "" {
		return Entry{}, ErrInstructionsRequired
	}
	if field == FieldCitation && prev.Citation == "" {
		return Entry{}, ErrNoCitation
	}
	out, err := a.complete(ctx, BuildRevisionPrompt(field, prev.Text(field), instructions))
	if err != nil {
		return Entry{}, fmt.Errorf("regenerate %s: %w", field, err)
	}
	next := prev.with(field, out)
	next.CreatedAt = a.now()
	return next, nil
}

func (a *Agent) rule(form Form) string {
	if form.Award == awards.Other {
		if r := strings.TrimSpace(form.CustomRule); r != "" {
			return r
		}
	}
	return a.catalog.Rule(form.AwardName())
}

func (a *Agent) complete(ctx context.Context, prompt Prompt) (string, error) {
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return PlainText(raw)
}
