package quizgen

import (
	"fmt"
	"strings"

	"pdfquiz/internal/domain"
)

// BuildInstructions renders the natural-language instruction block for
// one generation pass. Pure construction, no side effects.
func BuildInstructions(req domain.PassRequest, avoidCap int) string {
	var b strings.Builder

	b.WriteString("Generate revision questions strictly from the provided document content ONLY.\n\n")
	b.WriteString("Return ONLY a JSON object conforming to this JSON Schema. No extra fields:\n\n")
	b.WriteString(quizSchemaJSON)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "This is %s of %d. Create:\n", req.Label, req.TotalPasses)
	fmt.Fprintf(&b, "- MCQ: %d\n", req.Counts.MCQ)
	fmt.Fprintf(&b, "- True/False: %d\n", req.Counts.TF)
	fmt.Fprintf(&b, "- Fill-in-the-Blank: %d\n\n", req.Counts.FIB)
	b.WriteString("Rules:\n")
	b.WriteString("- MCQ: Exactly 4 options A-D, only ONE correct.\n")
	b.WriteString("- TF: answer must be \"True\" or \"False\".\n")
	fmt.Fprintf(&b, "- FIB: prompt must contain %q once per blank.\n", domain.BlankToken)
	b.WriteString("  Provide answers as an array of arrays (one array per blank) with acceptable variants.\n")
	b.WriteString("- Avoid repeating earlier questions; aim for variety across topics in the document.\n")
	b.WriteString("- No explanations.\n")

	if avoid := formatAvoidList(req.Avoid, avoidCap); avoid != "" {
		b.WriteString("\nDo NOT reproduce any of these previously generated questions:\n")
		b.WriteString(avoid)
		b.WriteString("\n")
	}

	return b.String()
}

// formatAvoidList numbers the prior prompts, keeping only the most
// recent max entries to bound request size. Returns "" when empty.
func formatAvoidList(prompts []string, max int) string {
	if len(prompts) == 0 {
		return ""
	}
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
