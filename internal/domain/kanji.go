package domain

// Kanji is one record of the target character list. Only Char is used by the
// generator; the other fields are carried through from the input file.
type Kanji struct {
	Char    string `json:"kanji"`
	UCSHex  string `json:"ucsHex,omitempty"`
	Grade   int    `json:"grade,omitempty"`
	Strokes int    `json:"strokes,omitempty"`
}

// KanjiSet is the set of target characters used for membership tests.
type KanjiSet map[string]struct{}

// NewKanjiSet builds a set from the Char field of every record.
func NewKanjiSet(list []Kanji) KanjiSet {
	set := make(KanjiSet, len(list))
	for _, k := range list {
		set[k.Char] = struct{}{}
	}
	return set
}

// Contains reports whether r is a target character.
func (s KanjiSet) Contains(r rune) bool {
	_, ok := s[string(r)]
	return ok
}

// Len returns the number of distinct target characters.
func (s KanjiSet) Len() int {
	return len(s)
}

// Matches returns the target characters found in word, in order of first
// appearance and without repeats.
func (s KanjiSet) Matches(word string) []string {
	var out []string
	seen := make(map[rune]bool)
	for _, r := range word {
		if seen[r] || !s.Contains(r) {
			continue
		}
		seen[r] = true
		out = append(out, string(r))
	}
	return out
}
