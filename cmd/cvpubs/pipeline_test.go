package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/cvpubs/internal/config"
	"github.com/matsen/cvpubs/internal/cvdoc"
	"github.com/matsen/cvpubs/internal/publication"
)

const testBib = `
@article{rozhkov2020,
  title = {{Foo}},
  author = {Smith, Jane and Rozhkov, Ivan},
  journal = {Bar},
  year = {2020},
  month = {mar}
}

@inproceedings{doe2022,
  title = "Conference \"Talk\"",
  author = {John Doe and Some University, Moscow, Russia},
  booktitle = {Proc. of Things},
  year = 2022,
  month = 1,
  doi = {10.1000/abc}
}

@misc{undated,
  title = {No Year Here}
}
`

const testCV = `cv:
  name: Ivan Rozhkov
  sections:
    Education:
      - institution: MSU
design:
  theme: classic
`

// setupProject writes a bibliography and CV file into a temporary project.
func setupProject(t *testing.T, bib, cv string) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{}
	if bib != "" {
		files[config.DefaultBibPath] = bib
	}
	if cv != "" {
		files[config.DefaultCVPath] = cv
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestSyncPublications(t *testing.T) {
	root := setupProject(t, testBib, testCV)
	cfg := config.Default()

	resp, skips, err := syncPublications(root, cfg, false)
	if err != nil {
		t.Fatalf("syncPublications() error = %v", err)
	}
	if resp.Count != 2 || resp.Skipped != 1 || resp.Status != "injected" {
		t.Errorf("syncPublications() = %+v, want 2 injected, 1 skipped", resp)
	}
	if len(skips) != 1 || skips[0].Type != "misc" || skips[0].Reason != publication.ReasonMissingYear {
		t.Errorf("skips = %+v", skips)
	}

	doc, err := cvdoc.Load(cfg.CVFile(root))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var got []publication.Publication
	if _, err := doc.Section("cv", "Publications", &got); err != nil {
		t.Fatal(err)
	}
	want := []publication.Publication{
		{
			Title:   `Conference \"Talk\"`,
			Authors: []string{"John Doe"},
			Journal: "Proc. of Things",
			Date:    "2022-01",
			DOI:     "10.1000/abc",
		},
		{
			Title:   "Foo",
			Authors: []string{"Jane Smith", "***Ivan Rozhkov***"},
			Journal: "Bar",
			Date:    "2020-03",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Publications = %+v, want %+v", got, want)
	}

	var edu []map[string]string
	if found, _ := doc.Section("cv", "Education", &edu); !found {
		t.Error("Education section should survive the sync")
	}
}

func TestSyncPublications_MissingFiles(t *testing.T) {
	tests := []struct {
		name string
		bib  string
		cv   string
	}{
		{"missing bibliography", "", testCV},
		{"missing cv", testBib, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupProject(t, tt.bib, tt.cv)
			_, _, err := syncPublications(root, config.Default(), false)
			if !errors.Is(err, errFileNotFound) {
				t.Fatalf("syncPublications() error = %v, want errFileNotFound", err)
			}
			if exitCodeFor(err) != ExitConfigError {
				t.Errorf("exitCodeFor() = %d, want %d", exitCodeFor(err), ExitConfigError)
			}
		})
	}
}

func TestSyncPublications_MissingTopKeyLeavesFileUntouched(t *testing.T) {
	original := "design:\n  theme: classic   # keep this spacing\n"
	root := setupProject(t, testBib, original)
	cfg := config.Default()

	_, _, err := syncPublications(root, cfg, false)
	if !errors.Is(err, cvdoc.ErrMissingTopKey) {
		t.Fatalf("syncPublications() error = %v, want ErrMissingTopKey", err)
	}
	if code := exitCodeFor(err); code != ExitDataError {
		t.Errorf("exitCodeFor() = %d, want %d", code, ExitDataError)
	}
	if got := readFile(t, cfg.CVFile(root)); got != original {
		t.Errorf("CV file was modified:\n%s", got)
	}
}

func TestSyncPublications_InvalidYAML(t *testing.T) {
	original := "cv: [unclosed\n"
	root := setupProject(t, testBib, original)
	cfg := config.Default()

	_, _, err := syncPublications(root, cfg, false)
	if exitCodeFor(err) != ExitDataError {
		t.Errorf("exitCodeFor(%v) = %d, want %d", err, exitCodeFor(err), ExitDataError)
	}
	if got := readFile(t, cfg.CVFile(root)); got != original {
		t.Errorf("CV file was modified:\n%s", got)
	}
}

func TestSyncPublications_DryRun(t *testing.T) {
	root := setupProject(t, testBib, testCV)
	cfg := config.Default()

	resp, _, err := syncPublications(root, cfg, true)
	if err != nil {
		t.Fatalf("syncPublications() error = %v", err)
	}
	if resp.Status != "dry_run" || len(resp.Publications) != 2 {
		t.Errorf("syncPublications() = %+v, want dry_run with 2 publications", resp)
	}
	if got := readFile(t, cfg.CVFile(root)); got != testCV {
		t.Errorf("dry run modified the CV file:\n%s", got)
	}
}

func TestSyncPublications_CustomConfig(t *testing.T) {
	root := setupProject(t, testBib, "resume:\n  name: X\n")
	cfg := config.Default()
	cfg.TopKey = "resume"
	cfg.Section = "Papers"
	cfg.OwnerNames = nil

	if _, _, err := syncPublications(root, cfg, false); err != nil {
		t.Fatalf("syncPublications() error = %v", err)
	}

	doc, err := cvdoc.Load(cfg.CVFile(root))
	if err != nil {
		t.Fatal(err)
	}
	var got []publication.Publication
	found, err := doc.Section("resume", "Papers", &got)
	if err != nil || !found {
		t.Fatalf("Section() = (%v, %v), want found", found, err)
	}
	if len(got) != 2 || got[1].Authors[1] != "Ivan Rozhkov" {
		t.Errorf("Papers = %+v, want 2 entries without emphasis", got)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errFileNotFound, ExitConfigError},
		{cvdoc.ErrMissingTopKey, ExitDataError},
		{cvdoc.ErrNotMapping, ExitDataError},
		{cvdoc.ErrInvalidDocument, ExitDataError},
		{errors.New("disk full"), ExitError},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
