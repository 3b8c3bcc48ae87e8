package catalog

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kanjiwords/data"
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

func kanjiSet(chars ...string) domain.KanjiSet {
	list := make([]domain.Kanji, len(chars))
	for i, c := range chars {
		list[i] = domain.Kanji{Char: c}
	}
	return domain.NewKanjiSet(list)
}

func wordsOf(entries []domain.WordEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Word
	}
	return out
}

// --- Extract ---

func TestExtract_Example(t *testing.T) {
	entries, err := LoadFile(testdataPath(t, "mini.json"))
	require.NoError(t, err)

	got := Extract(kanjiSet("日", "水"), entries)

	require.Len(t, got, 2)
	assert.Equal(t, []domain.WordEntry{{Word: "日本", Reading: "にほん", Meaning: "Japan"}}, got["日"])
	assert.Equal(t, []string{"水", "水道"}, wordsOf(got["水"]))
	_, hasHon := got["本"]
	assert.False(t, hasHon, "non-target kanji must not get a bucket")
}

func TestExtract_DedupFirstWins(t *testing.T) {
	entries := []domain.WordEntry{
		{Word: "人口", Reading: "じんこう", Meaning: "population"},
		{Word: "人口", Reading: "にんく", Meaning: "wrong"},
		{Word: "人人", Reading: "ひとびと", Meaning: "people"},
	}

	got := Extract(kanjiSet("人", "口"), entries)

	require.Len(t, got["人"], 2)
	assert.Equal(t, "じんこう", got["人"][0].Reading)
	assert.Equal(t, "人人", got["人"][1].Word)
	require.Len(t, got["口"], 1)
	assert.Equal(t, "population", got["口"][0].Meaning)
}

func TestExtract_SameWordUnderSeveralKanji(t *testing.T) {
	entries := []domain.WordEntry{{Word: "学生", Reading: "がくせい", Meaning: "student"}}

	got := Extract(kanjiSet("学", "生"), entries)

	assert.Equal(t, []string{"学生"}, wordsOf(got["学"]))
	assert.Equal(t, []string{"学生"}, wordsOf(got["生"]))
}

func TestExtract_NoOverlap(t *testing.T) {
	entries := []domain.WordEntry{{Word: "水", Reading: "みず", Meaning: "water"}}

	got := Extract(kanjiSet("亜"), entries)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtract_Idempotent(t *testing.T) {
	entries, err := Load(data.Catalog, data.CatalogDir)
	require.NoError(t, err)
	set := kanjiSet("日", "水", "学", "人", "山", "亜")

	first := Extract(set, entries)
	second := Extract(set, entries)

	assert.Equal(t, first, second)
}

// --- Load ---

func TestLoad_EmbeddedCatalog(t *testing.T) {
	entries, err := Load(data.Catalog, data.CatalogDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1015)

	for _, e := range entries {
		assert.NotEmpty(t, e.Word)
	}

	// Every catalog word containing a target kanji lands in its bucket once.
	set := kanjiSet("水", "日")
	got := Extract(set, entries)
	assert.Equal(t, []string{"水", "水曜日", "水道", "水泳", "香水", "飲料水"}, wordsOf(got["水"]))

	for k, bucket := range got {
		seen := make(map[string]bool)
		for _, e := range bucket {
			assert.Contains(t, e.Word, k)
			assert.False(t, seen[e.Word], "duplicate %q under %s", e.Word, k)
			seen[e.Word] = true
		}
	}
}

func TestLoad_SortedFileOrder(t *testing.T) {
	entries, err := Load(os.DirFS(testdataPath(t, "")), "split")
	require.NoError(t, err)

	// a.json before b.json, blank word dropped, notes.txt ignored.
	assert.Equal(t, []string{"人", "山"}, wordsOf(entries))
}

func TestLoad_NoFiles(t *testing.T) {
	fsys := fstest.MapFS{"catalog/readme.md": {Data: []byte("x")}}

	_, err := Load(fsys, "catalog")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestLoad_InvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{"catalog/words.json": {Data: []byte(`[{"word":`)}}

	_, err := Load(fsys, "catalog")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}
