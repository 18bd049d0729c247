// Package words loads the category dataset: an opaque, read-only mapping
// from category name to its candidate secret words.
package words

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Categories map[string][]string

// Load reads the dataset from a yaml file of the form:
//
//	animals: [cat, dog]
//	food: [pizza]
func Load(path string) (Categories, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}

	categories := Categories{}
	if err = yaml.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse words file: %w", err)
	}

	return categories, nil
}

// Names returns the category names in sorted order.
func (that Categories) Names() []string {
	names := make([]string, 0, len(that))
	for name := range that {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Deck concatenates the word lists of the selected categories. Unknown
// category names contribute nothing.
func (that Categories) Deck(selected []string) []string {
	var deck []string
	for _, name := range selected {
		deck = append(deck, that[name]...)
	}

	return deck
}
