package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/knol"
	"github.com/conorfennell/kotoba/internal/parser"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrLoad is returned when the card data cannot be read or parsed.
	ErrLoad = errors.New("failed to load card data")

	// ErrInvalidCard is returned when a card record is missing a required field.
	ErrInvalidCard = errors.New("invalid card")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads card data from path, which is either a single .json or .md
// file or a directory holding any number of them.
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var cards []domain.Card
	if info.IsDir() {
		cards, err = loadDir(path)
	} else {
		cards, err = loadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	if err := finalize(cards); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return New(cards), nil
}

// LoadJSON decodes a JSON array of card records.
func LoadJSON(r io.Reader) (*Catalog, error) {
	cards, err := decodeJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if err := finalize(cards); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return New(cards), nil
}

func loadDir(dir string) ([]domain.Card, error) {
	var cards []domain.Card
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err // Propagate errors from WalkDir
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isCardFile(path) {
			return nil
		}
		fileCards, err := loadFile(path)
		if err != nil {
			return err
		}
		cards = append(cards, fileCards...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func isCardFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".md":
		return true
	}
	return false
}

func loadFile(path string) ([]domain.Card, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		cards, err := parser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		return cards, nil
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cards, err := decodeJSON(f)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
		return cards, nil
	}
	return nil, fmt.Errorf("unsupported card file %s", path)
}

func decodeJSON(r io.Reader) ([]domain.Card, error) {
	var cards []domain.Card
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// finalize validates every record and fills in missing ids.
func finalize(cards []domain.Card) error {
	seen := make(map[string]int, len(cards))
	for i := range cards {
		if err := validate.Struct(cards[i]); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidCard, i, err)
		}
		cards[i].ID = knol.ID(cards[i])
		if j, dup := seen[cards[i].ID]; dup {
			return fmt.Errorf("%w: duplicate id %q at index %d and %d", ErrInvalidCard, cards[i].ID, j, i)
		}
		seen[cards[i].ID] = i
	}
	return nil
}
