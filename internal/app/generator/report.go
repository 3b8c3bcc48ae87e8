package generator

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// missingPerLine is how many missing kanji a coverage listing prints per line.
const missingPerLine = 50

// Report is the human-readable summary printed after a run.
type Report struct {
	Stats   domain.Stats
	Sample  []SampleLine
	Missing []string
	Output  string
	DryRun  bool
}

// SampleLine shows the first few words of one sample kanji.
type SampleLine struct {
	Kanji string
	Words []domain.WordEntry
}

// BuildReport summarizes out. Sample kanji absent from the mapping are
// skipped; each sample shows at most sampleSize words.
func BuildReport(out *Outcome, outputPath string, sampleKanji []string, sampleSize int) Report {
	r := Report{
		Stats:   out.Stats,
		Missing: out.Words.Missing(out.Kanji),
		Output:  outputPath,
		DryRun:  out.DryRun,
	}
	for _, k := range sampleKanji {
		words, ok := out.Words[k]
		if !ok || len(words) == 0 {
			continue
		}
		r.Sample = append(r.Sample, SampleLine{Kanji: k, Words: words[:min(sampleSize, len(words))]})
	}
	return r
}

// WriteTo prints the report.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "    Kanji with words: %d / %d\n", r.Stats.KanjiWithWords, r.Stats.TargetCount)
	fmt.Fprintf(&b, "    Total word entries: %d\n", r.Stats.TotalEntries)
	fmt.Fprintf(&b, "    Average words per kanji: %.1f\n", r.Stats.Average)
	fmt.Fprintf(&b, "    Kanji without words: %d\n", len(r.Missing))

	if r.DryRun {
		fmt.Fprintf(&b, "\nDry run: %s not written\n", r.Output)
	} else {
		fmt.Fprintf(&b, "\nSaved: %s\n", r.Output)
	}

	if len(r.Sample) > 0 {
		b.WriteString("\nSample output:\n")
		for _, line := range r.Sample {
			fmt.Fprintf(&b, "    %s: %s\n", line.Kanji, formatWords(line.Words))
		}
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func formatWords(words []domain.WordEntry) string {
	parts := make([]string, len(words))
	for i, e := range words {
		parts[i] = e.Word + "(" + e.Reading + ")"
	}
	return strings.Join(parts, ", ")
}

// Coverage compares a target kanji list with a generated mapping.
type Coverage struct {
	Target  int
	Covered int
	Missing []string
	// Extra lists mapping keys that are not target kanji, sorted.
	Extra []string
}

// CheckCoverage computes which target kanji have no words and which mapping
// keys fall outside the target list.
func CheckCoverage(kanji []domain.Kanji, words domain.WordsByKanji) Coverage {
	set := domain.NewKanjiSet(kanji)
	c := Coverage{
		Target:  set.Len(),
		Missing: words.Missing(kanji),
	}
	c.Covered = c.Target - len(c.Missing)
	for _, k := range slices.Sorted(maps.Keys(words)) {
		if _, ok := set[k]; !ok {
			c.Extra = append(c.Extra, k)
		}
	}
	return c
}

// WriteTo prints the coverage summary, listing missing kanji 50 per line.
func (c Coverage) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Target kanji: %d\n", c.Target)
	fmt.Fprintf(&b, "Covered: %d\n", c.Covered)
	fmt.Fprintf(&b, "Missing: %d\n", len(c.Missing))

	if len(c.Missing) > 0 {
		b.WriteString("----------------------------------------\n")
		for i := 0; i < len(c.Missing); i += missingPerLine {
			end := min(i+missingPerLine, len(c.Missing))
			b.WriteString(strings.Join(c.Missing[i:end], " "))
			b.WriteByte('\n')
		}
	}
	if len(c.Extra) > 0 {
		b.WriteString("----------------------------------------\n")
		fmt.Fprintf(&b, "Not in target list: %d\n", len(c.Extra))
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
