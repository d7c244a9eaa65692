package generator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"award_vetter/awards"
)

var (
	ErrDraftRequired        = errors.New("draft text is required")
	ErrSubjectRequired      = errors.New("rank and name are required")
	ErrAwardRequired        = errors.New("award name is required")
	ErrInstructionsRequired = errors.New("modification instructions are required")
	ErrNoCurrentEntry       = errors.New("no generated entry yet")
	ErrNoCitation           = errors.New("entry has no citation")
	ErrStaleVersion         = errors.New("version is no longer current")
	ErrUnknownField         = errors.New("unknown field")
)

// Field 标识 Entry 中可编辑的一段文本。
type Field string

const (
	FieldBrief    Field = "brief"
	FieldCitation Field = "citation"
)

func ParseField(s string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case FieldBrief:
		return FieldBrief, nil
	case FieldCitation:
		return FieldCitation, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Stats are the optional fitness and award details shown for extended awards.
type Stats struct {
	IPPT           string `json:"ippt,omitempty"`
	BMI            string `json:"bmi,omitempty"`
	ATP            string `json:"atp,omitempty"`
	PreviousAwards string `json:"previous_awards,omitempty"`
}

// Subject 是首次生成时记录的人员信息快照，重新生成时原样沿用。
type Subject struct {
	Rank  string `json:"rank"`
	Name  string `json:"name"`
	Award string `json:"award"`
	Unit  string `json:"unit"`
	Month string `json:"month"`
	Stats Stats  `json:"stats"`
}

// Entry is one generated (or operator-edited) version in a history.
// Citation 为空表示该奖项没有嘉奖词。
type Entry struct {
	Brief     string    `json:"brief"`
	Citation  string    `json:"citation"`
	Subject   Subject   `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

func (e Entry) Text(f Field) string {
	if f == FieldCitation {
		return e.Citation
	}
	return e.Brief
}

func (e Entry) with(f Field, value string) Entry {
	switch f {
	case FieldCitation:
		e.Citation = value
	default:
		e.Brief = value
	}
	return e
}

// Form 是首次生成时操作员填写的表单。
type Form struct {
	Award          string `form:"award"`
	CustomAward    string `form:"custom_award"`
	CustomRule     string `form:"custom_rule"`
	Role           string `form:"role"`
	CustomRole     string `form:"custom_role"`
	Unit           string `form:"unit"`
	Rank           string `form:"rank"`
	FullName       string `form:"full_name"`
	PreferredName  string `form:"preferred_name"`
	Month          string `form:"month"`
	IPPT           string `form:"ippt"`
	BMI            string `form:"bmi"`
	ATP            string `form:"atp"`
	PreviousAwards string `form:"previous_awards"`
	CitationDraft  string `form:"citation_draft"`
	Draft          string `form:"draft"`
}

// AwardName resolves the free-form award when Other is selected.
func (f Form) AwardName() string {
	if f.Award == awards.Other {
		return strings.TrimSpace(f.CustomAward)
	}
	return strings.TrimSpace(f.Award)
}

// RoleName resolves the free-form role when OtherRole is selected.
func (f Form) RoleName() string {
	if f.Role == awards.OtherRole {
		return strings.TrimSpace(f.CustomRole)
	}
	return strings.TrimSpace(f.Role)
}

// Name is the upper-cased full name.
func (f Form) Name() string {
	return strings.ToUpper(strings.TrimSpace(f.FullName))
}

// Preferred 是正文中军衔后使用的大写称呼，默认取全名最后一个词。
func (f Form) Preferred() string {
	if p := strings.TrimSpace(f.PreferredName); p != "" {
		return strings.ToUpper(p)
	}
	parts := strings.Fields(f.Name())
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Validate 在调用模型之前检查必填项。
func (f Form) Validate() error {
	if strings.TrimSpace(f.Draft) == "" {
		return ErrDraftRequired
	}
	if strings.TrimSpace(f.Rank) == "" || f.Name() == "" {
		return ErrSubjectRequired
	}
	if f.AwardName() == "" {
		return ErrAwardRequired
	}
	return nil
}

func (f Form) Subject() Subject {
	return Subject{
		Rank:  strings.TrimSpace(f.Rank),
		Name:  f.Name(),
		Award: f.AwardName(),
		Unit:  strings.TrimSpace(f.Unit),
		Month: strings.TrimSpace(f.Month),
		Stats: Stats{
			IPPT:           strings.TrimSpace(f.IPPT),
			BMI:            strings.TrimSpace(f.BMI),
			ATP:            strings.TrimSpace(f.ATP),
			PreviousAwards: strings.TrimSpace(f.PreviousAwards),
		},
	}
}
