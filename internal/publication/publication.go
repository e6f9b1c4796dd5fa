// Package publication turns raw bibliography entries into CV publication records.
package publication

import (
	"sort"
)

// Publication is one rendering-ready CV publication entry.
type Publication struct {
	Title   string   `yaml:"title" json:"title"`
	Authors []string `yaml:"authors" json:"authors"`
	Journal string   `yaml:"journal,omitempty" json:"journal,omitempty"` // Journal or conference/book title
	Date    string   `yaml:"date" json:"date"`                           // YYYY or YYYY-MM
	DOI     string   `yaml:"doi,omitempty" json:"doi,omitempty"`
}

// Skip records a bibliography entry that produced no publication.
type Skip struct {
	Index  int    `json:"index"` // Position of the entry in the bibliography
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Skip reasons.
const (
	ReasonMissingTitle = "missing title"
	ReasonMissingYear  = "missing year"
)

// SortByDate sorts publications newest first by comparing their date strings.
// Publications with equal dates keep their relative order.
func SortByDate(pubs []Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return pubs[i].Date > pubs[j].Date
	})
}
