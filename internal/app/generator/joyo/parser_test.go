package joyo

import (
	"errors"
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

func TestParse_Sample(t *testing.T) {
	list, set, err := Parse(testdataPath(t, "joyo_sample.json"))
	require.NoError(t, err)

	// Duplicates kept in the raw list.
	require.Len(t, list, 4)
	assert.Equal(t, "日", list[0].Char)
	assert.Equal(t, "65E5", list[0].UCSHex)
	assert.Equal(t, 1, list[0].Grade)
	assert.Equal(t, 4, list[0].Strokes)
	assert.Equal(t, "亜", list[2].Char)

	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains('日'))
	assert.True(t, set.Contains('水'))
	assert.True(t, set.Contains('亜'))
	assert.False(t, set.Contains('月'))
}

func TestParse_FileNotFound(t *testing.T) {
	_, _, err := Parse(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputNotFound), "got %v", err)
}

func TestParse_NotAnArray(t *testing.T) {
	_, _, err := Parse(testdataPath(t, "not_array.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
}

func TestParse_RecordWithoutKanji(t *testing.T) {
	_, _, err := Parse(testdataPath(t, "missing_kanji.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "record 2")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"empty array", `[]`, []string{}, false},
		{"extra fields ignored", `[{"kanji":"山","meanings":["mountain"]}]`, []string{"山"}, false},
		{"whitespace trimmed", `[{"kanji":" 人 "}]`, []string{"人"}, false},
		{"missing kanji field", `[{"grade":1}]`, nil, true},
		{"empty kanji field", `[{"kanji":""}]`, nil, true},
		{"blank kanji field", `[{"kanji":"日"},{"kanji":"  "}]`, nil, true},
		{"other key name", `[{"character":"日"}]`, nil, true},
		{"empty object", `[{}]`, nil, true},
		{"invalid json", `[{"kanji":`, nil, true},
		{"wrong field type", `[{"kanji":1}]`, nil, true},
		{"object instead of array", `{"kanji":"日"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)

			chars := make([]string, 0, len(got))
			for _, k := range got {
				chars = append(chars, k.Char)
			}
			assert.Equal(t, tt.want, chars)
		})
	}
}
