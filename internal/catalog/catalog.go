// Package catalog loads the static card data and groups it into themes.
package catalog

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/conorfennell/kotoba/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// untitled names a theme whose cards carry neither a name nor a key.
const untitled = "Untitled"

// Catalog is the read-only set of cards and the themes derived from them.
type Catalog struct {
	cards   []domain.Card
	byID    map[string]int
	themes  []domain.Theme
	byTheme map[string][]int
}

// New builds a catalog from cards, deriving themes in display-name order.
// The first card of a theme decides its display name.
func New(cards []domain.Card) *Catalog {
	c := &Catalog{
		cards:   cards,
		byID:    make(map[string]int, len(cards)),
		byTheme: make(map[string][]int),
	}

	themeIdx := map[string]int{}
	for i, card := range cards {
		c.byID[card.ID] = i
		c.byTheme[card.ThemeKey] = append(c.byTheme[card.ThemeKey], i)

		if j, ok := themeIdx[card.ThemeKey]; ok {
			c.themes[j].Count++
			continue
		}
		themeIdx[card.ThemeKey] = len(c.themes)
		c.themes = append(c.themes, domain.Theme{
			Key:   card.ThemeKey,
			Name:  displayName(card.ThemeName, card.ThemeKey),
			Count: 1,
		})
	}

	col := collate.New(language.Japanese)
	sort.SliceStable(c.themes, func(i, j int) bool {
		return col.CompareString(c.themes[i].Name, c.themes[j].Name) < 0
	})
	return c
}

func displayName(name, key string) string {
	switch {
	case name != "":
		return name
	case key != "":
		return key
	}
	return untitled
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns every card in data-file order.
func (c *Catalog) Cards() []domain.Card {
	return c.cards
}

// Card looks a card up by id.
func (c *Catalog) Card(id string) (domain.Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Card{}, false
	}
	return c.cards[i], true
}

// Has reports whether a card with the id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Themes returns every theme sorted by display name.
func (c *Catalog) Themes() []domain.Theme {
	return c.themes
}

// Theme looks a theme up by key.
func (c *Catalog) Theme(key string) (domain.Theme, bool) {
	for _, t := range c.themes {
		if t.Key == key {
			return t, true
		}
	}
	return domain.Theme{}, false
}

// ThemeName returns the theme's display name, or the key itself when the
// theme is not in the catalog.
func (c *Catalog) ThemeName(key string) string {
	if t, ok := c.Theme(key); ok {
		return t.Name
	}
	return displayName("", key)
}

// CardsInTheme returns the theme's cards in data-file order.
func (c *Catalog) CardsInTheme(key string) []domain.Card {
	idx := c.byTheme[key]
	cards := make([]domain.Card, 0, len(idx))
	for _, i := range idx {
		cards = append(cards, c.cards[i])
	}
	return cards
}

// Search returns the themes whose display name contains query, ignoring
// case and surrounding whitespace. An empty query matches every theme.
func (c *Catalog) Search(query string) []domain.Theme {
	return FilterThemes(c.themes, query)
}

// Lookup resolves theme keys to themes, skipping keys no longer in the
// catalog and keeping the given order.
func (c *Catalog) Lookup(keys []string) []domain.Theme {
	var themes []domain.Theme
	for _, k := range keys {
		if t, ok := c.Theme(k); ok {
			themes = append(themes, t)
		}
	}
	return themes
}

// FilterThemes keeps the themes whose name contains query.
func FilterThemes(themes []domain.Theme, query string) []domain.Theme {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return themes
	}
	var out []domain.Theme
	for _, t := range themes {
		if strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, t)
		}
	}
	return out
}

// Holder publishes the current catalog to concurrent readers.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder returns a Holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Get returns the current catalog.
func (h *Holder) Get() *Catalog {
	return h.current.Load()
}

// Swap replaces the current catalog.
func (h *Holder) Swap(c *Catalog) {
	h.current.Store(c)
}
