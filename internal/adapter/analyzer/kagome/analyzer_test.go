package kagome

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New()
	require.NoError(t, err)
	return a
}

func TestAnalyze_Readings(t *testing.T) {
	a := newAnalyzer(t)

	tokens, err := a.Analyze(context.Background(), "毎日勉強します。")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	var surfaces []string
	readings := make(map[string]string)
	for _, tok := range tokens {
		surfaces = append(surfaces, tok.Surface)
		readings[tok.Surface] = tok.Reading
	}

	assert.Equal(t, "毎日勉強します。", strings.Join(surfaces, ""), "tokens cover the whole text")
	assert.Equal(t, "ベンキョウ", readings["勉強"])
	assert.Equal(t, "マイニチ", readings["毎日"])
}

func TestAnalyze_Empty(t *testing.T) {
	a := newAnalyzer(t)

	tokens, err := a.Analyze(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestAnalyze_UnknownWordHasNoPlaceholder(t *testing.T) {
	a := newAnalyzer(t)

	tokens, err := a.Analyze(context.Background(), "ｘｙｚｚｙ")
	require.NoError(t, err)
	for _, tok := range tokens {
		assert.NotEqual(t, "*", tok.Reading)
	}
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	a := newAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, "水")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_RecoversPanic(t *testing.T) {
	a := &Analyzer{} // nil tokenizer panics on use

	tokens, err := a.Analyze(context.Background(), "水")
	require.Error(t, err)
	assert.Nil(t, tokens)
	assert.Contains(t, err.Error(), "kagome: analyze")
}

func TestAnalyzer_ProducesDomainTokens(t *testing.T) {
	a := newAnalyzer(t)

	tokens, err := a.Analyze(context.Background(), "水")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, domain.Token{Surface: "水", Reading: "ミズ"}, tokens[0])
}
