package bibtex

import "testing"

func TestStripBraces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain", "Plain"},
		{"{Braced}", "Braced"},
		{"{{Double}}", "Double"},
		{"{}", ""},
		{"{A} and {B}", "A} and {B"},
		{"{Open", "{Open"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := StripBraces(tt.in); got != tt.want {
				t.Errorf("StripBraces(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"command and tilde", `\textbf{Hello}~World`, "Hello World"},
		{"guillemets", `\flqq Quoted\frqq`, "« Quoted»"},
		{"double quote command", `\dq{}x\dq{}`, `"x"`},
		{"en dash", "pp. 10--20", "pp. 10–20"},
		{"stray braces", "{DNA} {Repair}", "DNA Repair"},
		{"command with trailing space", `\emph Important`, "Important"},
		{"surrounding whitespace", "  padded  ", "padded"},
		{"empty after cleanup", `\relax{}`, ""},
		{"composes to NFC", "Jose\u0301", "Jos\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLaTeX(tt.in); got != tt.want {
				t.Errorf("CleanLaTeX(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
