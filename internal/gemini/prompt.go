package gemini

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	keyPrefixRE = regexp.MustCompile(`^(writing_|prog_|biz_|social_|learn_|custom_)`)
	fenceRE     = regexp.MustCompile("(?s)^```(?:\\w+[ \t]*\n)?(.*?)\n?```$")
)

// BuildInstruction assembles the meta-prompt sent to the model: the
// category, one line per non-empty answer in catalogue order, an optional
// variation request for regeneration, and fixed output constraints.
func BuildInstruction(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert AI Prompt Engineer. Your task is to generate a concise, effective, and context-aware prompt that a user can provide to a large language model (like ChatGPT, Claude, or Gemini itself) to get a high-quality response.

The user requires a prompt for the category: %q.

Here are the user's specific requirements and context, derived from their answers to guiding questions:
`, string(req.Category))

	wrote := false
	for _, q := range req.Questions {
		value := strings.TrimSpace(req.Answers[q.ID])
		if value == "" {
			continue
		}
		wrote = true
		fmt.Fprintf(&b, "- %s: %s\n", readableKey(q.ID), value)
	}
	if !wrote {
		b.WriteString("- The user did not provide specific details. Generate a general prompt for the category.\n")
	}

	if req.PreviousText != "" {
		fmt.Fprintf(&b, "\nThe user wants a variation of a previous prompt. The previous prompt was: %q. Please generate a significantly different but related prompt based on the same inputs.\n", req.PreviousText)
	}

	b.WriteString(`
Instructions for you, the Prompt Engineer:
- Generate ONLY the AI prompt itself.
- The prompt should be a direct command or question to an AI model.
- Do NOT include any surrounding text, conversational filler, or your own analysis.
- Ensure the prompt is actionable and clear.
- Tailor the prompt complexity and vocabulary to the implied expertise level from the user's answers.

Generate the AI prompt now:`)

	return b.String()
}

// readableKey turns a question ID into a human-readable restatement:
// the category prefix is stripped, separators become spaces, and the
// first letter is capitalized ("prog_language" -> "Language").
func readableKey(id string) string {
	key := keyPrefixRE.ReplaceAllString(id, "")
	key = strings.ReplaceAll(key, "_", " ")
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// CleanResponse trims the model output and unwraps a single fenced block
// (with optional language tag) covering the whole response. Models add
// fences despite instructions often enough to make this worthwhile.
func CleanResponse(text string) string {
	cleaned := strings.TrimSpace(text)
	if m := fenceRE.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}
	return cleaned
}
