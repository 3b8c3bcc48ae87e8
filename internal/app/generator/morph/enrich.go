// Package morph harvests extra example words by running sentences through a
// morphological analyzer.
package morph

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// minTokenLength is the shortest surface, in characters, kept as a word.
const minTokenLength = 2

// Analyzer splits text into tokens.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]domain.Token, error)
}

// Options tunes how tokens become entries.
type Options struct {
	// HiraganaReadings converts katakana readings to hiragana.
	HiraganaReadings bool
}

// Result reports what an enrichment run contributed.
// Err is non-nil when the run was abandoned; counts cover the work done
// before that point.
type Result struct {
	Sentences int
	Tokens    int
	Added     int
	Err       error
}

// Enrich returns a copy of words extended with analyzer tokens found in
// sentences. A token is kept when it is at least two characters long,
// contains a target kanji and carries a reading. It is added, with an empty
// meaning, to the bucket of every target kanji it contains unless the
// bucket already lists the same word.
//
// A nil analyzer yields domain.ErrAnalyzerUnavailable. The first analyzer
// error stops the run; entries added before it are kept in the returned
// mapping. The input mapping is never modified.
func Enrich(ctx context.Context, a Analyzer, words domain.WordsByKanji, set domain.KanjiSet, sentences []string, opts Options) (domain.WordsByKanji, Result) {
	out := words.Clone()
	if a == nil {
		return out, Result{Err: domain.ErrAnalyzerUnavailable}
	}

	var res Result
	for _, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return out, res
		}

		tokens, err := a.Analyze(ctx, sentence)
		if err != nil {
			res.Err = fmt.Errorf("analyze sentence %d: %w", res.Sentences+1, err)
			return out, res
		}
		res.Sentences++
		res.Tokens += len(tokens)

		for _, tok := range tokens {
			entry, kanji, ok := toEntry(tok, set, opts)
			if !ok {
				continue
			}
			for _, k := range kanji {
				if out.Add(k, entry) {
					res.Added++
				}
			}
		}
	}
	return out, res
}

func toEntry(tok domain.Token, set domain.KanjiSet, opts Options) (domain.WordEntry, []string, bool) {
	if utf8.RuneCountInString(tok.Surface) < minTokenLength {
		return domain.WordEntry{}, nil, false
	}
	kanji := set.Matches(tok.Surface)
	if len(kanji) == 0 {
		return domain.WordEntry{}, nil, false
	}
	reading := domain.NormalizeReading(tok.Reading)
	if reading == "" {
		return domain.WordEntry{}, nil, false
	}
	if opts.HiraganaReadings {
		reading = domain.ToHiragana(reading)
	}
	return domain.WordEntry{Word: tok.Surface, Reading: reading}, kanji, true
}

// ParseSentences splits text into one sentence per line.
// Blank lines and lines starting with '#' are skipped.
func ParseSentences(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// LoadSentences reads a sentences file from disk.
func LoadSentences(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sentences: open %s: %w", path, domain.ErrInputNotFound)
		}
		return nil, fmt.Errorf("sentences: open %s: %w", path, err)
	}
	return ParseSentences(string(data)), nil
}
