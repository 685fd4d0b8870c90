package tui

import "unicode/utf8"

// pageSize is the default number of venues fetched per API call.
const pageSize = 50

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders a labeled single-line form field with a block
// cursor when focused and a placeholder when empty.
func renderField(label, value, placeholder string, focused bool) string {
	prompt := metaStyle.Render(label)
	if focused {
		prompt = inputPromptStyle.Render(label)
	}
	switch {
	case value == "" && focused:
		return prompt + " " + accentStyle.Render("█")
	case value == "":
		return prompt + " " + inputPlaceholderStyle.Render(placeholder)
	case focused:
		return prompt + " " + selectedStyle.Render(value) + accentStyle.Render("█")
	default:
		return prompt + " " + normalStyle.Render(value)
	}
}

// maskValue replaces every rune with a bullet for password fields.
func maskValue(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, utf8.RuneCountInString(s))
	for range s {
		out = append(out, '•')
	}
	return string(out)
}
