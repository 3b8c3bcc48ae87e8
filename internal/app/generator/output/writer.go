// Package output serializes the finished kanji → words mapping.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

const indent = "  "

// Encode writes words to w as an indented JSON object. Non-ASCII text is
// written literally and an empty or nil mapping becomes {}.
func Encode(w io.Writer, words domain.WordsByKanji) error {
	if words == nil {
		words = domain.WordsByKanji{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(words); err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	return nil
}

// WriteJSON writes words to path, creating parent directories as needed.
// The file is written to a temporary sibling first and renamed into place,
// so readers never see a partial file.
func WriteJSON(path string, words domain.WordsByKanji) error {
	var buf bytes.Buffer
	if err := Encode(&buf, words); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a mapping previously written by WriteJSON.
func ReadJSON(path string) (domain.WordsByKanji, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var words domain.WordsByKanji
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, domain.ErrInvalidInput, err)
	}
	return words, nil
}
