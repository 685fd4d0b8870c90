package tui

import (
	"strings"
	"testing"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append letter", "cabi", "n", "cabin"},
		{"append to empty", "", "c", "c"},
		{"backspace", "cabin", "backspace", "cabi"},
		{"backspace empty", "", "backspace", ""},
		{"ignore enter", "cabin", "enter", "cabin"},
		{"ignore esc", "cabin", "esc", "cabin"},
		{"multibyte append", "fjord", "ø", "fjordø"},
		{"multibyte backspace", "fjordø", "backspace", "fjord"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editRune(tt.text, tt.key); got != tt.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("a", maxInputLen)
	if got := editRune(long, "b"); got != long {
		t.Error("expected input clamped at maxInputLen")
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\nfour\n"
	got := truncateToHeight(s, 2)
	if got != "one\ntwo\n" {
		t.Errorf("truncateToHeight() = %q", got)
	}
	if truncateToHeight(s, 0) != s {
		t.Error("expected original string for maxLines<=0")
	}
	if truncateToHeight(s, 10) != s {
		t.Error("expected original string when it fits")
	}
}

func TestMaskValue(t *testing.T) {
	if got := maskValue("hunter22"); got != "••••••••" {
		t.Errorf("maskValue() = %q", got)
	}
	if maskValue("") != "" {
		t.Error("expected empty mask for empty input")
	}
}

func TestRenderField(t *testing.T) {
	if got := renderField("email:", "", "name@stud.noroff.no", false); !strings.Contains(got, "name@stud.noroff.no") {
		t.Errorf("expected placeholder in unfocused empty field, got %q", got)
	}
	if got := renderField("email:", "solveig@", "", true); !strings.Contains(got, "█") {
		t.Errorf("expected cursor in focused field, got %q", got)
	}
	if got := renderField("email:", "solveig@", "", false); strings.Contains(got, "█") {
		t.Errorf("did not expect cursor in unfocused field, got %q", got)
	}
}
