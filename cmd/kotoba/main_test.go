package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/progress"
	"github.com/conorfennell/kotoba/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsJSON = `[
  {"id": "f1", "themeKey": "food", "themeName": "食べ物", "jp": "お腹が空いた", "en": "I'm hungry.", "ipa": "aɪm ˈhʌŋɡri"},
  {"id": "f2", "themeKey": "food", "themeName": "食べ物", "jp": "おいしい", "en": "It's delicious.", "ipa": "ɪts dɪˈlɪʃəs"}
]`

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args,
		"--data.path", filepath.Join(dir, "cards.json"),
		"--store.path", filepath.Join(dir, "kotoba.db"),
		"--log.level", "error",
	))
	err := root.Execute()
	return out.String(), err
}

func TestThemesCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.json"), []byte(cardsJSON), 0o644))

	out, err := run(t, dir, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "food")
	assert.Contains(t, out, "食べ物")
	assert.Contains(t, out, "Today: 0")
}

func TestSyncPrunesRemovedCards(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.json"), []byte(cardsJSON), 0o644))

	db, err := storage.Open(filepath.Join(dir, "kotoba.db"))
	require.NoError(t, err)
	repo := progress.New(db)
	require.NoError(t, repo.SetStatus("f1", domain.StatusKnown))
	require.NoError(t, repo.SetStatus("removed", domain.StatusKnown))
	require.NoError(t, db.Close())

	out, err := run(t, dir, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "2 cards in 1 themes")
	assert.Contains(t, out, "1 stored entries refer to removed cards")

	out, err = run(t, dir, "sync", "--prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned progress for 1 removed cards")

	db, err = storage.Open(filepath.Join(dir, "kotoba.db"))
	require.NoError(t, err)
	defer db.Close()
	repo = progress.New(db)
	assert.Equal(t, domain.StatusKnown, repo.Status("f1"))
	assert.Equal(t, domain.StatusUnknown, repo.Status("removed"))
}

func TestLoadFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "themes")
	assert.ErrorContains(t, err, "failed to load cards")
}

func TestStudyNeedsTheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards.json"), []byte(cardsJSON), 0o644))

	_, err := run(t, dir, "study")
	assert.ErrorContains(t, err, "no theme given")

	_, err = run(t, dir, "study", "travel")
	assert.ErrorContains(t, err, `unknown theme "travel"`)
}
