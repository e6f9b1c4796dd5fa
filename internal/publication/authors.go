package publication

import (
	"regexp"
	"strings"

	"github.com/matsen/cvpubs/internal/bibtex"
	"golang.org/x/text/cases"
)

var authorSeparator = regexp.MustCompile(`\s+and\s+`)

// ParseAuthors splits a BibTeX author field into display names.
//
// Both "Last, First" and "First Last" forms are accepted; the former is
// reordered. Pieces with two or more commas are institutional placeholders
// (e.g. "Some University, City, Country") and are dropped.
func ParseAuthors(raw string) []string {
	names := []string{}
	for _, part := range authorSeparator.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var name string
		switch strings.Count(part, ",") {
		case 0:
			name = part
		case 1:
			last, first, _ := strings.Cut(part, ",")
			name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
		default:
			continue
		}

		if name = bibtex.CleanLaTeX(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Emphasizer highlights the CV owner's name in author lists.
type Emphasizer struct {
	folder   cases.Caser
	variants []string // case-folded owner surname variants
}

// NewEmphasizer returns an Emphasizer matching any of the given surname
// variants (e.g. Latin and Cyrillic spellings). Empty variants are ignored.
func NewEmphasizer(ownerNames []string) *Emphasizer {
	e := &Emphasizer{folder: cases.Fold()}
	for _, n := range ownerNames {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		e.variants = append(e.variants, e.folder.String(n))
	}
	return e
}

// IsOwner reports whether name contains one of the owner surname variants,
// ignoring case.
func (e *Emphasizer) IsOwner(name string) bool {
	folded := e.folder.String(name)
	for _, v := range e.variants {
		if strings.Contains(folded, v) {
			return true
		}
	}
	return false
}

// Emphasize returns a copy of authors with owner names wrapped as ***Name***.
func (e *Emphasizer) Emphasize(authors []string) []string {
	out := make([]string, 0, len(authors))
	for _, name := range authors {
		if e.IsOwner(name) {
			name = "***" + name + "***"
		}
		out = append(out, name)
	}
	return out
}
