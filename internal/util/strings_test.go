package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncate(t *testing.T) {
	red := "\x1b[31mhello world\x1b[0m"

	tests := []struct {
		name     string
		input    string
		maxWidth int
		check    func(t *testing.T, result string)
	}{
		{
			name:     "short plain string unchanged",
			input:    "hello",
			maxWidth: 10,
			check: func(t *testing.T, result string) {
				if result != "hello" {
					t.Errorf("expected 'hello', got %q", result)
				}
			},
		},
		{
			name:     "exact width unchanged",
			input:    "hello",
			maxWidth: 5,
			check: func(t *testing.T, result string) {
				if result != "hello" {
					t.Errorf("expected 'hello', got %q", result)
				}
			},
		},
		{
			name:     "plain string truncated",
			input:    "hello world",
			maxWidth: 8,
			check: func(t *testing.T, result string) {
				if result != "hello w…" {
					t.Errorf("expected 'hello w…', got %q", result)
				}
			},
		},
		{
			name:     "zero width is empty",
			input:    "hello",
			maxWidth: 0,
			check: func(t *testing.T, result string) {
				if result != "" {
					t.Errorf("expected empty string, got %q", result)
				}
			},
		},
		{
			name:     "styled string unchanged when it fits",
			input:    red,
			maxWidth: 20,
			check: func(t *testing.T, result string) {
				if result != red {
					t.Errorf("styled string was modified: %q", result)
				}
			},
		},
		{
			name:     "styled string truncated respects width",
			input:    red,
			maxWidth: 6,
			check: func(t *testing.T, result string) {
				if w := lipgloss.Width(result); w > 6 {
					t.Errorf("result width %d exceeds maxWidth 6", w)
				}
			},
		},
		{
			name:     "wide characters measured by columns",
			input:    "日本語テキスト",
			maxWidth: 5,
			check: func(t *testing.T, result string) {
				if w := lipgloss.Width(result); w > 5 {
					t.Errorf("result width %d exceeds maxWidth 5", w)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 4, "abcd"},
		{"abcdef", 4, "abc…"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := PadRight(tt.input, tt.width); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 rows"},
		{1, "1 row"},
		{2, "2 rows"},
	}
	for _, tt := range tests {
		if got := Plural(tt.n, "row", "rows"); got != tt.want {
			t.Errorf("Plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
