// Package bibtex scans BibTeX-like bibliography text into raw field maps.
//
// The scanner is lenient and never returns an error. Unbalanced
// braces or missing separators truncate extraction, and whatever could be
// read is returned. Validation happens later, when entries are normalized.
package bibtex

import (
	"regexp"
	"strings"
)

// TypeField is the synthetic field holding the lowercased entry type
// (article, inproceedings, ...).
const TypeField = "_type"

// Entry maps lowercase field names to raw, unparsed values. Values may still
// contain braces and LaTeX markup.
type Entry map[string]string

// Type returns the lowercased entry type.
func (e Entry) Type() string {
	return e[TypeField]
}

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@(\w+)\s*\{([^,]+),`)
	// Match field start: name =
	fieldRegex = regexp.MustCompile(`(\w+)\s*=\s*`)
)

// Parse returns the entries found in text, in source order.
func Parse(text string) []Entry {
	var entries []Entry

	pos := 0
	for pos < len(text) {
		loc := entryStartRegex.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		entryType := strings.ToLower(text[pos+loc[2] : pos+loc[3]])
		start := pos + loc[1]

		body, next := entryBody(text, start)
		pos = next

		fields := Entry{TypeField: entryType}
		parseFields(body, fields)
		entries = append(entries, fields)
	}

	return entries
}

// entryBody returns the text between start and the brace closing the entry,
// and the position just past that brace. An entry left open runs to the end
// of text.
func entryBody(text string, start int) (string, int) {
	depth := 1
	i := start
	for i < len(text) && depth > 0 {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		i++
	}
	if depth > 0 {
		return text[start:], len(text)
	}
	return text[start : i-1], i
}

// parseFields fills fields with every "name = value" pair found in body.
func parseFields(body string, fields Entry) {
	pos := 0
	for pos < len(body) {
		loc := fieldRegex.FindStringSubmatchIndex(body[pos:])
		if loc == nil {
			return
		}
		name := strings.ToLower(body[pos+loc[2] : pos+loc[3]])
		value, next := extractValue(body, pos+loc[1])
		fields[name] = value
		pos = next
	}
}

// extractValue reads one field value starting at start. It handles
// brace-delimited {...}, quoted "..." and bare values (numbers, month
// abbreviations), and returns the value together with the position after any
// trailing whitespace and commas.
func extractValue(body string, start int) (string, int) {
	i := skipSpace(body, start)
	if i >= len(body) {
		return "", i
	}

	switch body[i] {
	case '{':
		depth := 1
		j := i + 1
		for j < len(body) && depth > 0 {
			switch body[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		end := j
		if depth == 0 {
			end = j - 1
		}
		return body[i+1 : end], skipSeparators(body, j)

	case '"':
		j := i + 1
		for j < len(body) && body[j] != '"' {
			if body[j] == '\\' {
				j++ // escaped character
			}
			j++
		}
		if j > len(body) {
			j = len(body)
		}
		value := body[i+1 : j]
		if j < len(body) {
			j++ // closing quote
		}
		return value, skipSeparators(body, j)
	}

	j := i
	for j < len(body) && !isBareTerminator(body[j]) {
		j++
	}
	return body[i:j], skipSeparators(body, j)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isBareTerminator(c byte) bool {
	return isSpace(c) || c == ',' || c == '}'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipSeparators(s string, i int) int {
	for i < len(s) && (isSpace(s[i]) || s[i] == ',') {
		i++
	}
	return i
}
