package domain

import (
	"maps"
	"slices"
	"unicode/utf8"
)

// WordEntry is one example word listed under a kanji.
// Reading and Meaning are empty for words harvested from the analyzer
// when it had nothing to offer.
type WordEntry struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
}

// Length returns the number of characters in Word.
func (e WordEntry) Length() int {
	return utf8.RuneCountInString(e.Word)
}

// Token is one unit produced by a morphological analyzer.
type Token struct {
	Surface string
	Reading string
}

// WordsByKanji maps a single kanji to the words that contain it.
// Within a bucket every Word is unique; the same word may sit under several kanji.
type WordsByKanji map[string][]WordEntry

// Add appends e to the bucket of kanji unless the bucket already holds an
// entry with the same Word. The first entry wins; later ones are not merged.
// It reports whether e was appended.
func (m WordsByKanji) Add(kanji string, e WordEntry) bool {
	for _, existing := range m[kanji] {
		if existing.Word == e.Word {
			return false
		}
	}
	m[kanji] = append(m[kanji], e)
	return true
}

// SortByLength orders every bucket by ascending word length.
// Entries of equal length keep their insertion order.
func (m WordsByKanji) SortByLength() {
	for _, words := range m {
		slices.SortStableFunc(words, func(a, b WordEntry) int {
			return a.Length() - b.Length()
		})
	}
}

// Clone returns a deep copy.
func (m WordsByKanji) Clone() WordsByKanji {
	out := make(WordsByKanji, len(m))
	for k, words := range m {
		out[k] = slices.Clone(words)
	}
	return out
}

// TotalEntries returns the sum of all bucket sizes.
func (m WordsByKanji) TotalEntries() int {
	total := 0
	for _, words := range m {
		total += len(words)
	}
	return total
}

// Missing returns the characters of list that have no bucket, in list order.
func (m WordsByKanji) Missing(list []Kanji) []string {
	var out []string
	seen := make(map[string]bool, len(list))
	for _, k := range list {
		if seen[k.Char] {
			continue
		}
		seen[k.Char] = true
		if len(m[k.Char]) == 0 {
			out = append(out, k.Char)
		}
	}
	return out
}

// Stats summarizes a finished mapping.
type Stats struct {
	TargetCount    int
	KanjiWithWords int
	TotalEntries   int
	Average        float64
}

// Stats computes coverage figures against targetCount input records.
// Average is zero for an empty mapping.
func (m WordsByKanji) Stats(targetCount int) Stats {
	s := Stats{
		TargetCount:    targetCount,
		KanjiWithWords: len(m),
		TotalEntries:   m.TotalEntries(),
	}
	if s.KanjiWithWords > 0 {
		s.Average = float64(s.TotalEntries) / float64(s.KanjiWithWords)
	}
	return s
}

// KanjiWord is one entry of the mapping flattened into a table row.
// Position is the zero-based index of the entry within its kanji's bucket.
type KanjiWord struct {
	Kanji    string
	Position int
	WordEntry
}

// Rows flattens the mapping, ordered by kanji and then by position.
func (m WordsByKanji) Rows() []KanjiWord {
	rows := make([]KanjiWord, 0, m.TotalEntries())
	for _, k := range slices.Sorted(maps.Keys(m)) {
		for i, e := range m[k] {
			rows = append(rows, KanjiWord{Kanji: k, Position: i, WordEntry: e})
		}
	}
	return rows
}
