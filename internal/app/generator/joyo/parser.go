// Package joyo loads the target kanji list (a JSON array of records with at
// least a "kanji" field). Pure function: file path in, domain structs out.
package joyo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// Parse reads the kanji list at path and returns the records in file order
// together with the set of their characters.
// A record without a non-empty "kanji" field makes the whole file invalid.
func Parse(path string) ([]domain.Kanji, domain.KanjiSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("open %s: %w", path, domain.ErrInputNotFound)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	list, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list, domain.NewKanjiSet(list), nil
}

// Decode reads a JSON array of kanji records from r.
func Decode(r io.Reader) ([]domain.Kanji, error) {
	var raw []domain.Kanji
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if raw == nil {
		raw = []domain.Kanji{}
	}

	for i := range raw {
		raw[i].Char = strings.TrimSpace(raw[i].Char)
		if raw[i].Char == "" {
			return nil, fmt.Errorf("record %d: missing \"kanji\": %w", i, domain.ErrInvalidInput)
		}
	}
	return raw, nil
}
