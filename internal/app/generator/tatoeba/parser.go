// Package tatoeba reads Japanese sentences from Tatoeba TSV exports.
// Pure function: file path in, sentences out.
package tatoeba

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

const (
	// LangJapanese is the Tatoeba language code kept by default.
	LangJapanese = "jpn"

	maxSentenceLen = 500
)

// Result holds the sentences kept from an export, in file order.
type Result struct {
	Sentences []string
	Stats     Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines  int
	Malformed   int
	SkippedLang int
	SkippedLong int
	Duplicates  int
}

// Parse reads a Tatoeba sentences export ("id<TAB>lang<TAB>text" per line)
// and keeps the sentences written in lang. An empty lang keeps every line.
func Parse(path, lang string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("tatoeba: open %s: %w", path, domain.ErrInputNotFound)
		}
		return Result{}, fmt.Errorf("tatoeba: open %s: %w", path, err)
	}
	defer f.Close()

	res, err := Decode(f, lang)
	if err != nil {
		return Result{}, fmt.Errorf("tatoeba: %s: %w", path, err)
	}
	return res, nil
}

// Decode parses an export from r.
func Decode(r io.Reader, lang string) (Result, error) {
	var res Result
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		res.Stats.TotalLines++

		fields := strings.SplitN(scanner.Text(), "\t", 3)
		if len(fields) < 3 {
			res.Stats.Malformed++
			continue
		}
		if lang != "" && fields[1] != lang {
			res.Stats.SkippedLang++
			continue
		}

		text := strings.TrimSpace(fields[2])
		if text == "" {
			res.Stats.Malformed++
			continue
		}
		if len(text) > maxSentenceLen {
			res.Stats.SkippedLong++
			continue
		}
		if _, dup := seen[text]; dup {
			res.Stats.Duplicates++
			continue
		}
		seen[text] = struct{}{}
		res.Sentences = append(res.Sentences, text)
	}

	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
