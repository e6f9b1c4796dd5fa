package bibtex

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// latexReplacer maps the few LaTeX sequences that carry meaning to their
// plain-text equivalents.
var latexReplacer = strings.NewReplacer(
	`\flqq`, "«", // «
	`\frqq`, "»", // »
	`\dq`, `"`,
	"~", " ",
	"--", "–", // –
)

// commandRegex matches any remaining simple \cmd sequence (e.g. \textbf) and
// the whitespace after it.
var commandRegex = regexp.MustCompile(`\\[a-zA-Z]+\s*`)

var braceRemover = strings.NewReplacer("{", "", "}", "")

// StripBraces removes fully enclosing outer braces from s, as many layers as
// there are.
func StripBraces(s string) string {
	for len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		s = s[1 : len(s)-1]
	}
	return s
}

// CleanLaTeX normalizes common LaTeX markup to plain Unicode text.
func CleanLaTeX(s string) string {
	s = latexReplacer.Replace(s)
	s = commandRegex.ReplaceAllString(s, "")
	s = braceRemover.Replace(s)
	return norm.NFC.String(strings.TrimSpace(s))
}
