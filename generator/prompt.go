package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a staff officer writing formal military award write-ups. Output plain text only, with no explanations."

// Prompt 表示发送给 LLM 的消息。
type Prompt struct {
	System string
	User   string
}

// BriefRequest 是简述提示词用到的全部输入，原样嵌入。
type BriefRequest struct {
	Role          string
	Unit          string
	Award         string
	Rank          string
	FullName      string
	PreferredName string
	Rule          string
	Examples      string
	Draft         string
}

// BuildBriefPrompt 生成主简述提示词。
func BuildBriefPrompt(r BriefRequest) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Role: %s\n", r.Role)
	fmt.Fprintf(&sb, "Unit: %s\n", r.Unit)
	fmt.Fprintf(&sb, "Award: %s\n", r.Award)
	fmt.Fprintf(&sb, "Subject: %s %s\n\n", r.Rank, r.FullName)

	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("1. Tense: Use strictly Past or Present tense only\n")
	sb.WriteString("2. Exercise Names: Remove ALL exercise names (e.g., Ex Wallaby, Ex Thunder) instead mention them as exercise or overseas exercise\n")
	fmt.Fprintf(&sb, "3. Opening Line: Start with 'Being a [appropriate adjective] %s from %s...'\n", r.Role, r.Unit)
	fmt.Fprintf(&sb, "4. Name Usage: Use '%s %s'\n", r.Rank, r.PreferredName)
	fmt.Fprintf(&sb, "5. Length: Approximately %s\n", r.Rule)
	sb.WriteString("6. Tone: Professional, formal military writing\n")
	sb.WriteString("7. Focus: Highlight any two or three of the serviceman's specific achievements, leadership, primary and secondary duties, inspiration to peers, attitude, safety, punctuality and contributions depending on the context given by user\n")
	sb.WriteString("8. Style: Match the format, structure, and tone of the examples below\n")
	sb.WriteString("9. Formatting Rules:\n")
	sb.WriteString("   - Do NOT use asterisks (*) for emphasis or highlighting\n")
	sb.WriteString("   - Do NOT use bold, italics, or any special formatting\n")
	sb.WriteString("   - Write in plain text only\n")
	sb.WriteString("   - Do NOT end with recommendation phrases like \"I recommend him\", \"he deserves\", \"worthy of this award\", etc.\n")
	sb.WriteString("   - End with the last achievement or quality statement\n")
	sb.WriteString("10. Output: Provide ONLY the final justification text in plain text format with no explanations, no meta-commentary, no formatting marks\n")

	sb.WriteString(r.Examples)
	sb.WriteString("\nDRAFT CONTENT:\n")
	sb.WriteString(r.Draft)
	sb.WriteString("\n\nGenerate the final award justification following all rules above. Remember: plain text only, no asterisks, no recommendation ending.\n")

	return Prompt{System: systemPrompt, User: sb.String()}
}

// CitationRequest 是嘉奖词提示词的输入。Context 为嘉奖词草稿，没有时用主草稿。
type CitationRequest struct {
	Rank     string
	FullName string
	Context  string
	Examples string
}

// BuildCitationPrompt 生成扩展奖项的嘉奖词提示词。
func BuildCitationPrompt(r CitationRequest) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a formal military citation for %s %s from the perspective of a commander.\n\n", r.Rank, r.FullName)
	sb.WriteString("Requirements:\n")
	sb.WriteString("- 2 pages in length\n")
	sb.WriteString("- Formal, professional tone\n")
	sb.WriteString("- Highlight key achievements, duties and performance of the serviceman\n")
	sb.WriteString("- Base content strictly on the provided context - do not hallucinate or invent achievements\n")
	sb.WriteString("- No exercise names - refer to them as \"exercise\" or \"overseas exercise\"\n")
	sb.WriteString("- Plain text only - NO asterisks (*), NO bold, NO italics, NO special formatting\n")
	sb.WriteString("- Do NOT include any meta-commentary, explanations, or notes\n")
	sb.WriteString("- Do NOT end with recommendation phrases\n")
	sb.WriteString("- Output ONLY the citation text in plain text format\n")
	sb.WriteString(r.Examples)
	fmt.Fprintf(&sb, "\nContext: %s\n\n", r.Context)
	sb.WriteString("Generate the citation now. Remember: plain text only, no formatting marks, no comments.\n")

	return Prompt{System: systemPrompt, User: sb.String()}
}

// BuildRevisionPrompt 生成修订提示词，两个字段通用。
func BuildRevisionPrompt(field Field, original, instructions string) Prompt {
	var sb strings.Builder
	if field == FieldCitation {
		fmt.Fprintf(&sb, "Rewrite this citation with modifications: %s\n\n", instructions)
		sb.WriteString("Keep 2 page word limit, formal tone.\n")
		sb.WriteString("Output ONLY the revised citation, no explanations.\n\n")
		sb.WriteString("Original:\n")
	} else {
		fmt.Fprintf(&sb, "Rewrite the following text with these modifications: %s\n\n", instructions)
		sb.WriteString("Maintain the same structure and professionalism.\n")
		sb.WriteString("Output ONLY the revised text, no explanations.\n\n")
		sb.WriteString("Original Text:\n")
	}
	sb.WriteString(original)
	sb.WriteString("\n")

	return Prompt{System: systemPrompt, User: sb.String()}
}
