// Package catalog loads the curated (word, reading, meaning) catalog and
// buckets its words by the target kanji they contain.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// Load reads every *.json file directly under dir in fsys, in sorted name
// order, and concatenates their entries. Each file holds a JSON array of
// {word, reading, meaning} objects.
func Load(fsys fs.FS, dir string) ([]domain.WordEntry, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("catalog: glob %s: %w", dir, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog: no *.json files in %s: %w", dir, domain.ErrInputNotFound)
	}

	var entries []domain.WordEntry
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", name, err)
		}
		part, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", name, err)
		}
		entries = append(entries, part...)
	}
	return entries, nil
}

// LoadFile reads a single catalog file from the local file system.
func LoadFile(p string) ([]domain.WordEntry, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog: open %s: %w", p, domain.ErrInputNotFound)
		}
		return nil, fmt.Errorf("catalog: open %s: %w", p, err)
	}
	entries, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", p, err)
	}
	return entries, nil
}

// decode parses a JSON array of entries. Entries with an empty word are
// dropped; everything else is trusted as-is.
func decode(data []byte) ([]domain.WordEntry, error) {
	var raw []domain.WordEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	entries := raw[:0]
	for _, e := range raw {
		if strings.TrimSpace(e.Word) == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Extract buckets entries by every target kanji their word contains.
// Entries keep catalog order within a bucket and a word is listed at most
// once per kanji; the first occurrence wins.
// The result only has keys for kanji found in at least one word.
func Extract(set domain.KanjiSet, entries []domain.WordEntry) domain.WordsByKanji {
	words := make(domain.WordsByKanji)
	for _, e := range entries {
		for _, k := range set.Matches(e.Word) {
			words.Add(k, e)
		}
	}
	return words
}
