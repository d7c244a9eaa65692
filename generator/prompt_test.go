package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBriefPrompt(t *testing.T) {
	p := BuildBriefPrompt(BriefRequest{
		Role:          "Transport Operator (TO)",
		Unit:          "Alpha COY",
		Award:         "CO Coin",
		Rank:          "CPL",
		FullName:      "TAN WEI",
		PreferredName: "WEI",
		Rule:          "100 words",
		Examples:      "\n\nEXAMPLE WRITE-UPS FOR REFERENCE:\nsample\n",
		Draft:         "led convoy ops during Exercise Thunder",
	})

	assert.NotEmpty(t, p.System)
	assert.Contains(t, p.User, "Subject: CPL TAN WEI")
	assert.Contains(t, p.User, "Being a [appropriate adjective] Transport Operator (TO) from Alpha COY...")
	assert.Contains(t, p.User, "Use 'CPL WEI'")
	assert.Contains(t, p.User, "Approximately 100 words")
	assert.Contains(t, p.User, "Remove ALL exercise names")
	assert.Contains(t, p.User, "Do NOT use asterisks")
	assert.Contains(t, p.User, "Do NOT end with recommendation phrases")
	assert.Contains(t, p.User, "EXAMPLE WRITE-UPS FOR REFERENCE")
	// the draft passes through verbatim; filtering is the model's job
	assert.Contains(t, p.User, "DRAFT CONTENT:\nled convoy ops during Exercise Thunder")
	assert.Less(t, strings.Index(p.User, "INSTRUCTIONS:"), strings.Index(p.User, "DRAFT CONTENT:"))
}

func TestBuildBriefPromptWithoutExamples(t *testing.T) {
	p := BuildBriefPrompt(BriefRequest{Rank: "3SG", FullName: "LIM", Draft: "d"})
	assert.NotContains(t, p.User, "EXAMPLE")
	assert.Contains(t, p.User, "\nDRAFT CONTENT:\nd\n")
}

func TestBuildCitationPrompt(t *testing.T) {
	p := BuildCitationPrompt(CitationRequest{Rank: "LTA", FullName: "MARCUS LIM", Context: "planned 20 ops"})
	assert.Contains(t, p.User, "formal military citation for LTA MARCUS LIM")
	assert.Contains(t, p.User, "Context: planned 20 ops")
	assert.Contains(t, p.User, "No exercise names")
}

func TestBuildRevisionPrompt(t *testing.T) {
	brief := BuildRevisionPrompt(FieldBrief, "old brief", "make it humble")
	assert.Contains(t, brief.User, "Rewrite the following text with these modifications: make it humble")
	assert.Contains(t, brief.User, "Original Text:\nold brief")

	cite := BuildRevisionPrompt(FieldCitation, "old cite", "more formal")
	assert.Contains(t, cite.User, "Rewrite this citation with modifications: more formal")
	assert.Contains(t, cite.User, "Keep 2 page word limit")
	assert.Contains(t, cite.User, "Original:\nold cite")
}
