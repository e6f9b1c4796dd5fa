// Package cvdoc reads, edits and writes the CV YAML data file.
//
// The document is kept as a yaml.Node tree so that key order and comments
// outside the injected section survive a rewrite.
package cvdoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/cvpubs/internal/publication"
	"gopkg.in/yaml.v3"
)

// SectionsKey is the mapping under the top-level key that holds CV sections.
const SectionsKey = "sections"

// ErrMissingTopKey is returned when the document lacks the required top-level key.
var ErrMissingTopKey = errors.New("missing top-level key")

// ErrInvalidDocument is returned when the file is not valid YAML.
var ErrInvalidDocument = errors.New("invalid YAML document")

// ErrNotMapping is returned when a key that must hold a mapping holds something else.
var ErrNotMapping = errors.New("not a mapping")

// Document is a parsed CV data file.
type Document struct {
	root *yaml.Node
}

// Load reads and parses the YAML document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML document data.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &Document{root: &root}, nil
}

// InjectSection inserts or replaces the named section under
// topKey.sections with pubs. The top-level key must already exist and hold a
// mapping; the sections mapping is created if needed.
func (d *Document) InjectSection(topKey, name string, pubs []publication.Publication) error {
	top := d.topMapping()
	if top == nil {
		return fmt.Errorf("%w %q", ErrMissingTopKey, topKey)
	}

	cv := mappingValue(top, topKey)
	if cv == nil {
		return fmt.Errorf("%w %q", ErrMissingTopKey, topKey)
	}
	if cv.Kind != yaml.MappingNode {
		return fmt.Errorf("%q: %w", topKey, ErrNotMapping)
	}

	sections := mappingValue(cv, SectionsKey)
	switch {
	case sections == nil:
		sections = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setMappingValue(cv, SectionsKey, sections)
	case isNull(sections):
		*sections = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	case sections.Kind != yaml.MappingNode:
		return fmt.Errorf("%q: %w", topKey+"."+SectionsKey, ErrNotMapping)
	}

	if pubs == nil {
		pubs = []publication.Publication{}
	}
	var value yaml.Node
	if err := value.Encode(pubs); err != nil {
		return fmt.Errorf("encoding publications: %w", err)
	}
	setMappingValue(sections, name, &value)
	return nil
}

// Section decodes the named section under topKey.sections into out.
// It returns false if the section does not exist.
func (d *Document) Section(topKey, name string, out interface{}) (bool, error) {
	top := d.topMapping()
	if top == nil {
		return false, nil
	}
	cv := mappingValue(top, topKey)
	if cv == nil || cv.Kind != yaml.MappingNode {
		return false, nil
	}
	sections := mappingValue(cv, SectionsKey)
	if sections == nil || sections.Kind != yaml.MappingNode {
		return false, nil
	}
	section := mappingValue(sections, name)
	if section == nil {
		return false, nil
	}
	if err := section.Decode(out); err != nil {
		return true, fmt.Errorf("decoding section %q: %w", name, err)
	}
	return true, nil
}

// Bytes encodes the document as YAML with two-space indentation.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path. The file is replaced atomically, so a
// failed write leaves the previous content in place.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// topMapping returns the document's root mapping, or nil if the document is
// empty or its root is not a mapping.
func (d *Document) topMapping() *yaml.Node {
	n := d.root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	return n
}

// mappingValue returns the value node for key in mapping m, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces the value for key in m, appending the pair if the
// key is absent.
func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, keeping the original file's permissions.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
