// Package kagome adapts the kagome morphological analyzer (IPA dictionary,
// embedded in the binary) to the generator's Analyzer contract.
package kagome

import (
	"context"
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// Analyzer tokenizes Japanese text with kagome.
// Safe for concurrent use.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// New loads the IPA dictionary and builds a tokenizer that omits the
// BOS/EOS markers.
func New() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome: new tokenizer: %w", err)
	}
	return &Analyzer{t: t}, nil
}

// Analyze splits text into tokens in normal mode. Tokens without a
// dictionary reading (unknown words, symbols) get an empty Reading.
// A panic inside the tokenizer is returned as an error.
func (a *Analyzer) Analyze(ctx context.Context, text string) (tokens []domain.Token, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			tokens, err = nil, fmt.Errorf("kagome: analyze: %v", r)
		}
	}()

	ktoks := a.t.Analyze(text, tokenizer.Normal)
	tokens = make([]domain.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		reading, ok := kt.Reading()
		if !ok {
			reading = ""
		}
		tokens = append(tokens, domain.Token{
			Surface: kt.Surface,
			Reading: domain.NormalizeReading(reading),
		})
	}
	return tokens, nil
}
