// Package source resolves where the card data lives, fetches it, and
// reconciles stored progress against the cards it holds.
package source

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/kotoba/internal/catalog"
	"github.com/conorfennell/kotoba/internal/gitsource"
	"github.com/conorfennell/kotoba/internal/progress"
)

// Source locates the card data: a local path, or a path inside a git
// repository checked out under RepoDir.
type Source struct {
	Path    string
	Repo    string
	RepoDir string
}

// IsGit reports whether the data comes from a git repository.
func (s Source) IsGit() bool {
	return s.Repo != ""
}

// DataPath returns the local file or directory the catalog is loaded from.
func (s Source) DataPath() (string, error) {
	if !s.IsGit() {
		return s.Path, nil
	}
	checkout, err := s.checkoutPath()
	if err != nil {
		return "", err
	}
	if s.Path == "" || filepath.IsAbs(s.Path) {
		return checkout, nil
	}
	return filepath.Join(checkout, s.Path), nil
}

func (s Source) checkoutPath() (string, error) {
	return gitURLToLocalPath(s.RepoDir, s.Repo)
}

// Fetch brings a git source up to date. Local sources need no fetching.
func (s Source) Fetch(progress io.Writer) error {
	if !s.IsGit() {
		return nil
	}
	checkout, err := s.checkoutPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(checkout), 0o755); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}
	return gitsource.Sync(s.Repo, checkout, progress)
}

// Load fetches the source and loads its catalog. A failed fetch of a git
// source that already has a checkout falls back to the existing files.
func (s Source) Load(progress io.Writer) (*catalog.Catalog, string, error) {
	if err := s.Fetch(progress); err != nil {
		checkout, pathErr := s.checkoutPath()
		if pathErr != nil {
			return nil, "", err
		}
		if _, statErr := os.Stat(checkout); statErr != nil {
			return nil, "", err
		}
		slog.Warn("Failed to update card repository, using existing checkout", "url", s.Repo, "error", err)
	}

	path, err := s.DataPath()
	if err != nil {
		return nil, "", err
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, path, err
	}
	slog.Info("Card data loaded", "path", path, "cards", c.Len(), "themes", len(c.Themes()))
	return c, path, nil
}

// Report summarizes a reconciliation.
type Report struct {
	Cards   int
	Themes  int
	Orphans int
	Pruned  int
}

// Reconcile counts stored progress entries for cards that are no longer in
// the catalog, and removes them when prune is set.
func Reconcile(repo *progress.Repository, c *catalog.Catalog, prune bool) (Report, error) {
	report := Report{Cards: c.Len(), Themes: len(c.Themes())}

	orphans := repo.Orphans(c.Has)
	report.Orphans = len(orphans)
	for _, id := range orphans {
		slog.Debug("Orphaned progress entry", "card", id)
	}

	if prune && len(orphans) > 0 {
		n, err := repo.Prune(c.Has)
		if err != nil {
			return report, err
		}
		report.Pruned = n
	}

	slog.Info("reconciliation complete",
		"cards", report.Cards,
		"themes", report.Themes,
		"orphans", report.Orphans,
		"pruned", report.Pruned,
	)
	return report, nil
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		if err == nil && (parsedURL.Scheme == "file" || parsedURL.Scheme == "") && parsedURL.Path != "" {
			return filepath.Join(baseDir, "local", filepath.Base(strings.TrimSuffix(parsedURL.Path, ".git"))), nil
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
