package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/cvpubs/internal/config"
	"github.com/matsen/cvpubs/internal/cvdoc"
	"github.com/matsen/cvpubs/internal/publication"
)

// errFileNotFound is returned when the bibliography or the CV file is missing.
var errFileNotFound = errors.New("not found")

// requireFile returns errFileNotFound, naming path, unless path is a regular file.
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%s %w", path, errFileNotFound)
	}
	return nil
}

// loadPublications reads the bibliography and returns its publications newest first.
func loadPublications(root string, cfg *config.Config) ([]publication.Publication, []publication.Skip, error) {
	bibPath := cfg.BibFile(root)
	if err := requireFile(bibPath); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(bibPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", bibPath, err)
	}

	n := publication.NewNormalizer(cfg.OwnerNames)
	pubs, skips := n.FromBibTeX(string(data))
	return pubs, skips, nil
}

// syncPublications injects the bibliography into the CV file. Every check
// runs before the single write, so on error the CV file is left untouched.
// With dryRun the CV file is validated but never written.
func syncPublications(root string, cfg *config.Config, dryRun bool) (SyncResponse, []publication.Skip, error) {
	cvPath := cfg.CVFile(root)
	if err := requireFile(cfg.BibFile(root)); err != nil {
		return SyncResponse{}, nil, err
	}
	if err := requireFile(cvPath); err != nil {
		return SyncResponse{}, nil, err
	}

	pubs, skips, err := loadPublications(root, cfg)
	if err != nil {
		return SyncResponse{}, nil, err
	}

	doc, err := cvdoc.Load(cvPath)
	if err != nil {
		return SyncResponse{}, skips, err
	}
	if err := doc.InjectSection(cfg.TopKey, cfg.Section, pubs); err != nil {
		return SyncResponse{}, skips, fmt.Errorf("%s: %w", cvPath, err)
	}

	resp := SyncResponse{
		Status:  "injected",
		Count:   len(pubs),
		Skipped: len(skips),
		Path:    cvPath,
	}
	if dryRun {
		resp.Status = "dry_run"
		resp.Publications = pubs
		return resp, skips, nil
	}

	if err := doc.Save(cvPath); err != nil {
		return SyncResponse{}, skips, err
	}
	return resp, skips, nil
}

// exitCodeFor maps pipeline errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errFileNotFound):
		return ExitConfigError
	case errors.Is(err, cvdoc.ErrMissingTopKey),
		errors.Is(err, cvdoc.ErrNotMapping),
		errors.Is(err, cvdoc.ErrInvalidDocument):
		return ExitDataError
	default:
		return ExitError
	}
}
