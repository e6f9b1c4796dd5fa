package publication

import (
	"strings"

	"github.com/matsen/cvpubs/internal/bibtex"
)

// Normalizer converts raw bibliography entries into publications.
type Normalizer struct {
	emphasizer *Emphasizer
}

// NewNormalizer returns a Normalizer that emphasizes authors matching any of
// ownerNames.
func NewNormalizer(ownerNames []string) *Normalizer {
	return &Normalizer{emphasizer: NewEmphasizer(ownerNames)}
}

// Normalize converts one entry to a publication. It returns false if the
// entry lacks a title or a year.
func (n *Normalizer) Normalize(e bibtex.Entry) (Publication, bool) {
	pub, reason := n.normalize(e)
	return pub, reason == ""
}

func (n *Normalizer) normalize(e bibtex.Entry) (Publication, string) {
	rawTitle := e["title"]
	if rawTitle == "" {
		return Publication{}, ReasonMissingTitle
	}
	rawYear := strings.TrimSpace(e["year"])
	if rawYear == "" {
		return Publication{}, ReasonMissingYear
	}

	pub := Publication{
		Title:   bibtex.CleanLaTeX(bibtex.StripBraces(rawTitle)),
		Authors: n.emphasizer.Emphasize(ParseAuthors(e["author"])),
		Journal: bibtex.CleanLaTeX(bibtex.StripBraces(venue(e))),
		Date:    FormatDate(rawYear, e["month"]),
	}
	if doi := e["doi"]; doi != "" {
		pub.DOI = strings.TrimSpace(bibtex.StripBraces(doi))
	}

	return pub, ""
}

// venue prefers the journal field and falls back to booktitle.
func venue(e bibtex.Entry) string {
	if j := e["journal"]; j != "" {
		return j
	}
	return e["booktitle"]
}

// FromEntries normalizes all entries in order. Entries that produce no
// publication are returned as skips rather than errors.
func (n *Normalizer) FromEntries(entries []bibtex.Entry) ([]Publication, []Skip) {
	pubs := []Publication{}
	var skips []Skip
	for i, e := range entries {
		pub, reason := n.normalize(e)
		if reason != "" {
			skips = append(skips, Skip{Index: i, Type: e.Type(), Reason: reason})
			continue
		}
		pubs = append(pubs, pub)
	}
	return pubs, skips
}

// FromBibTeX scans bibliography text and returns its publications sorted
// newest first.
func (n *Normalizer) FromBibTeX(text string) ([]Publication, []Skip) {
	pubs, skips := n.FromEntries(bibtex.Parse(text))
	SortByDate(pubs)
	return pubs, skips
}
