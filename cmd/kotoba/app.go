package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kotoba/internal/catalog"
	"github.com/conorfennell/kotoba/internal/config"
	"github.com/conorfennell/kotoba/internal/logging"
	"github.com/conorfennell/kotoba/internal/progress"
	"github.com/conorfennell/kotoba/internal/source"
	"github.com/conorfennell/kotoba/internal/storage"
)

// app is what every subcommand works with: configuration, the progress
// store and the loaded card catalog.
type app struct {
	cfg      *config.Config
	db       *storage.DB
	progress *progress.Repository
	source   source.Source
	catalog  *catalog.Catalog
	dataPath string
}

// setup loads configuration, opens the progress store and loads the cards.
// A card load failure is fatal.
func setup(cmd *cobra.Command, gitProgress io.Writer) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if _, err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}

	src := source.Source{Path: cfg.Data.Path, Repo: cfg.Data.Repo, RepoDir: cfg.Data.RepoDir}
	cat, path, err := src.Load(gitProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	db, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Progress store opened", "path", cfg.Store.Path)

	return &app{
		cfg:      cfg,
		db:       db,
		progress: progress.New(db),
		source:   src,
		catalog:  cat,
		dataPath: path,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		slog.Error("Failed to close progress store", "error", err)
	}
}

// mediaDir is where relative audio references are resolved: the data
// directory, or the directory holding the data file.
func (a *app) mediaDir() string {
	info, err := os.Stat(a.dataPath)
	if err == nil && info.IsDir() {
		return a.dataPath
	}
	return filepath.Dir(a.dataPath)
}
