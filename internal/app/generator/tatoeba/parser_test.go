package tatoeba

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestParse(t *testing.T) {
	res, err := Parse(testdataPath(t, "sentences.tsv"), LangJapanese)
	require.NoError(t, err)

	assert.Equal(t, []string{"水道水を飲みました。", "毎日勉強します。", "山に登る。"}, res.Sentences)
	assert.Equal(t, Stats{
		TotalLines:  7,
		Malformed:   2,
		SkippedLang: 1,
		Duplicates:  1,
	}, res.Stats)
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.tsv"), LangJapanese)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestDecode(t *testing.T) {
	long := strings.Repeat("長", maxSentenceLen)

	tests := []struct {
		name      string
		input     string
		lang      string
		want      []string
		wantStats Stats
	}{
		{
			name:      "empty lang keeps all languages",
			input:     "1\tjpn\t水\n2\teng\twater\n",
			lang:      "",
			want:      []string{"水", "water"},
			wantStats: Stats{TotalLines: 2},
		},
		{
			name:      "long sentence skipped",
			input:     "1\tjpn\t" + long + "\n2\tjpn\t短い。\n",
			lang:      LangJapanese,
			want:      []string{"短い。"},
			wantStats: Stats{TotalLines: 2, SkippedLong: 1},
		},
		{
			name:      "tabs inside text are kept",
			input:     "1\tjpn\t左\t右\n",
			lang:      LangJapanese,
			want:      []string{"左\t右"},
			wantStats: Stats{TotalLines: 1},
		},
		{
			name:      "empty input",
			input:     "",
			lang:      LangJapanese,
			want:      nil,
			wantStats: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(strings.NewReader(tt.input), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Sentences)
			assert.Equal(t, tt.wantStats, res.Stats)
		})
	}
}
