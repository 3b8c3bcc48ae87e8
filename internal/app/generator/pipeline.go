// Package generator orchestrates the kanji → example words pipeline:
// load the target list, extract catalog words, enrich them with analyzer
// tokens, write the JSON mapping and optionally publish it.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanjiwords/data"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/catalog"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/joyo"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/morph"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/output"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/tatoeba"
	"github.com/heartmarshall/kanjiwords/internal/domain"
	"github.com/heartmarshall/kanjiwords/pkg/ctxutil"
)

// Phase names in execution order. Publish phases are reported as
// "publish:<target>".
const (
	PhaseLoad     = "load"
	PhaseCatalog  = "catalog"
	PhaseAnalyzer = "analyzer"
	PhaseWrite    = "write"
	PhasePublish  = "publish"
)

// Publisher writes the finalized mapping to an external store, replacing
// whatever a previous run left there. The run ID is carried in ctx.
type Publisher interface {
	Name() string
	ReplaceAll(ctx context.Context, rows []domain.KanjiWord) (int, error)
}

// Counter is implemented by publishers that can report how many rows they
// hold. The pipeline uses it to verify a publish.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Config holds pipeline settings.
type Config struct {
	InputPath     string
	OutputPath    string
	CatalogPath   string // optional override of the embedded catalog
	SentencesPath string // optional override of the embedded sentences
	DryRun        bool
	Morph         morph.Options
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Outcome is what a successful Run produced.
type Outcome struct {
	RunID  uuid.UUID
	Kanji  []domain.Kanji
	Words  domain.WordsByKanji
	Stats  domain.Stats
	DryRun bool
}

// Pipeline orchestrates the generation phases.
type Pipeline struct {
	log        *slog.Logger
	cfg        Config
	analyzer   morph.Analyzer
	publishers []Publisher

	catalogFS  fs.FS
	catalogDir string
	sentences  string

	order   []string
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline. A nil analyzer disables enrichment;
// the phase then records domain.ErrAnalyzerUnavailable.
func NewPipeline(log *slog.Logger, cfg Config, analyzer morph.Analyzer, publishers ...Publisher) *Pipeline {
	return &Pipeline{
		log:        log,
		cfg:        cfg,
		analyzer:   analyzer,
		publishers: publishers,
		catalogFS:  data.Catalog,
		catalogDir: data.CatalogDir,
		sentences:  data.Sentences,
		results:    make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Phases returns the names of the phases that ran, in order.
func (p *Pipeline) Phases() []string {
	return p.order
}

// HasErrors returns true if any phase other than the best-effort analyzer
// phase recorded an error. A failed publish counts: it was asked for.
func (p *Pipeline) HasErrors() bool {
	for name, r := range p.results {
		if name == PhaseAnalyzer {
			continue
		}
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes all phases. Load, catalog and write failures abort the run
// and are returned; analyzer and publish failures are recorded in Results
// and logged as warnings.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	p.log = p.log.With(slog.String("run_id", runID.String()))

	out := &Outcome{RunID: runID, DryRun: p.cfg.DryRun}

	var set domain.KanjiSet
	err := p.phase(ctx, PhaseLoad, func(ctx context.Context) PhaseResult {
		var err error
		out.Kanji, set, err = joyo.Parse(p.cfg.InputPath)
		if err != nil {
			return PhaseResult{Err: err}
		}
		p.log.Info("kanji loaded", slog.Int("records", len(out.Kanji)), slog.Int("unique", set.Len()))
		return PhaseResult{Inserted: len(out.Kanji)}
	})
	if err != nil {
		return nil, err
	}

	err = p.phase(ctx, PhaseCatalog, func(ctx context.Context) PhaseResult {
		entries, err := p.loadCatalog()
		if err != nil {
			return PhaseResult{Err: err}
		}
		out.Words = catalog.Extract(set, entries)
		total := out.Words.TotalEntries()
		return PhaseResult{Inserted: total, Skipped: len(entries) - countMatched(set, entries)}
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a failure leaves out.Words as enriched so far.
	_ = p.phase(ctx, PhaseAnalyzer, func(ctx context.Context) PhaseResult {
		sentences, err := p.loadSentences()
		if err != nil {
			return PhaseResult{Err: err}
		}
		var res morph.Result
		out.Words, res = morph.Enrich(ctx, p.analyzer, out.Words, set, sentences, p.cfg.Morph)
		p.log.Debug("analyzer finished",
			slog.Int("sentences", res.Sentences),
			slog.Int("tokens", res.Tokens),
		)
		return PhaseResult{Inserted: res.Added, Err: res.Err}
	})

	out.Words.SortByLength()
	out.Stats = out.Words.Stats(len(out.Kanji))

	err = p.phase(ctx, PhaseWrite, func(ctx context.Context) PhaseResult {
		if p.cfg.DryRun {
			return PhaseResult{Skipped: out.Stats.TotalEntries}
		}
		if err := output.WriteJSON(p.cfg.OutputPath, out.Words); err != nil {
			return PhaseResult{Err: err}
		}
		p.log.Info("output written", slog.String("path", p.cfg.OutputPath))
		return PhaseResult{Inserted: out.Stats.TotalEntries}
	})
	if err != nil {
		return nil, err
	}

	if len(p.publishers) > 0 {
		rows := out.Words.Rows()
		for _, pub := range p.publishers {
			_ = p.phase(ctx, PhasePublish+":"+pub.Name(), func(ctx context.Context) PhaseResult {
				if p.cfg.DryRun {
					return PhaseResult{Skipped: len(rows)}
				}
				n, err := pub.ReplaceAll(ctx, rows)
				if err != nil {
					return PhaseResult{Inserted: n, Err: err}
				}
				return PhaseResult{Inserted: n, Err: p.verifyPublish(ctx, pub, len(rows))}
			})
		}
	}

	p.log.Info("pipeline completed",
		slog.Int("phases_run", len(p.order)),
		slog.Int("kanji_with_words", out.Stats.KanjiWithWords),
		slog.Int("total_entries", out.Stats.TotalEntries),
		slog.Bool("dry_run", p.cfg.DryRun),
	)
	return out, nil
}

// phase runs fn, records and logs its result and returns its error.
func (p *Pipeline) phase(ctx context.Context, name string, fn func(ctx context.Context) PhaseResult) error {
	start := time.Now()
	p.log.Info("starting phase", slog.String("phase", name))

	result := fn(ctxutil.WithPhase(ctx, name))
	result.Duration = time.Since(start)
	p.results[name] = result
	p.order = append(p.order, name)

	if result.Err != nil {
		p.log.Warn("phase failed",
			slog.String("phase", name),
			slog.String("error", result.Err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return fmt.Errorf("%s: %w", name, result.Err)
	}

	p.log.Info("phase completed",
		slog.String("phase", name),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

// verifyPublish checks that a Counter publisher holds exactly want rows.
func (p *Pipeline) verifyPublish(ctx context.Context, pub Publisher, want int) error {
	c, ok := pub.(Counter)
	if !ok {
		return nil
	}
	got, err := c.Count(ctx)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	p.log.Info("publish verified", slog.String("target", pub.Name()), slog.Int("rows", got))
	if got != want {
		return fmt.Errorf("verify: target holds %d rows, want %d", got, want)
	}
	return nil
}

func (p *Pipeline) loadCatalog() ([]domain.WordEntry, error) {
	if p.cfg.CatalogPath != "" {
		return catalog.LoadFile(p.cfg.CatalogPath)
	}
	return catalog.Load(p.catalogFS, p.catalogDir)
}

// loadSentences reads the analyzer input. A .tsv override is treated as a
// Tatoeba export and filtered to Japanese.
func (p *Pipeline) loadSentences() ([]string, error) {
	path := p.cfg.SentencesPath
	switch {
	case path == "":
		return morph.ParseSentences(p.sentences), nil
	case strings.EqualFold(filepath.Ext(path), ".tsv"):
		res, err := tatoeba.Parse(path, tatoeba.LangJapanese)
		if err != nil {
			return nil, err
		}
		p.log.Info("tatoeba sentences loaded",
			slog.Int("sentences", len(res.Sentences)),
			slog.Int("total_lines", res.Stats.TotalLines),
			slog.Int("skipped_lang", res.Stats.SkippedLang),
			slog.Int("skipped_long", res.Stats.SkippedLong),
			slog.Int("duplicates", res.Stats.Duplicates),
		)
		return res.Sentences, nil
	default:
		return morph.LoadSentences(path)
	}
}

// countMatched returns how many catalog entries contain at least one target kanji.
func countMatched(set domain.KanjiSet, entries []domain.WordEntry) int {
	n := 0
	for _, e := range entries {
		if len(set.Matches(e.Word)) > 0 {
			n++
		}
	}
	return n
}
