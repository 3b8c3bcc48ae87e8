package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/kanjiwords/internal/adapter/analyzer/kagome"
	"github.com/heartmarshall/kanjiwords/internal/adapter/postgres"
	"github.com/heartmarshall/kanjiwords/internal/adapter/postgres/kanjiword"
	"github.com/heartmarshall/kanjiwords/internal/adapter/sqlite"
	"github.com/heartmarshall/kanjiwords/internal/app"
	"github.com/heartmarshall/kanjiwords/internal/app/generator"
	"github.com/heartmarshall/kanjiwords/internal/app/generator/morph"
	"github.com/heartmarshall/kanjiwords/internal/config"
	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// Compile-time interface assertions.
var (
	_ generator.Publisher = (*kanjiword.Repo)(nil)
	_ generator.Publisher = (*sqlite.Store)(nil)
	_ generator.Counter   = (*kanjiword.Repo)(nil)
	_ generator.Counter   = (*sqlite.Store)(nil)
	_ morph.Analyzer      = (*kagome.Analyzer)(nil)
)

const runTimeout = 30 * time.Minute

var errPublishFailed = errors.New("one or more publish targets failed")

var (
	inputFlag      string
	outputFlag     string
	catalogFlag    string
	sentencesFlag  string
	publishFlag    string
	noAnalyzerFlag bool
	dryRunFlag     bool
	hiraganaFlag   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the kanji → example words table",
	Long: "Loads the target kanji list, buckets catalog words by kanji, harvests extra words\n" +
		"from example sentences with the kagome analyzer, and writes the JSON table.\n" +
		"With --publish the table is also written to PostgreSQL and/or SQLite.",
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&inputFlag, "input", "", "kanji list JSON (overrides generator.input_path)")
	f.StringVar(&outputFlag, "output", "", "output JSON path (overrides generator.output_path)")
	f.StringVar(&catalogFlag, "catalog", "", "external catalog JSON instead of the embedded one")
	f.StringVar(&sentencesFlag, "sentences", "", "sentences file for the analyzer, one per line")
	f.StringVar(&publishFlag, "publish", "", "comma-separated publish targets: postgres, sqlite")
	f.BoolVar(&noAnalyzerFlag, "no-analyzer", false, "skip analyzer enrichment")
	f.BoolVar(&dryRunFlag, "dry-run", false, "run all phases without writing or publishing")
	f.BoolVar(&hiraganaFlag, "hiragana", false, "convert analyzer readings to hiragana")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	analyzer := newAnalyzer(cfg.Analyzer, logger)

	publishers, closeAll := openPublishers(ctx, cfg, logger)
	defer closeAll()

	pipeline := generator.NewPipeline(logger, generator.Config{
		InputPath:     cfg.Generator.InputPath,
		OutputPath:    cfg.Generator.OutputPath,
		CatalogPath:   cfg.Generator.CatalogPath,
		SentencesPath: cfg.Analyzer.SentencesPath,
		DryRun:        cfg.Generator.DryRun,
		Morph:         morph.Options{HiraganaReadings: cfg.Analyzer.HiraganaReadings},
	}, analyzer, publishers...)

	out, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		return err
	}

	report := generator.BuildReport(out, cfg.Generator.OutputPath, cfg.Generator.SampleKanji, cfg.Generator.SampleSize)
	if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		return errPublishFailed
	}
	return nil
}

// applyGenerateFlags lets explicitly set flags override the loaded config
// and revalidates the result.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Generator.InputPath = inputFlag
	}
	if flags.Changed("output") {
		cfg.Generator.OutputPath = outputFlag
	}
	if flags.Changed("catalog") {
		cfg.Generator.CatalogPath = catalogFlag
	}
	if flags.Changed("sentences") {
		cfg.Analyzer.SentencesPath = sentencesFlag
	}
	if flags.Changed("publish") {
		cfg.Generator.PublishRaw = publishFlag
	}
	if flags.Changed("no-analyzer") && noAnalyzerFlag {
		cfg.Analyzer.Backend = config.AnalyzerNone
	}
	if flags.Changed("dry-run") {
		cfg.Generator.DryRun = dryRunFlag
	}
	if flags.Changed("hiragana") {
		cfg.Analyzer.HiraganaReadings = hiraganaFlag
	}
	return cfg.Validate()
}

// newAnalyzer returns nil when the analyzer is disabled or cannot be built;
// the pipeline then records the analyzer phase as unavailable.
func newAnalyzer(cfg config.AnalyzerConfig, logger *slog.Logger) morph.Analyzer {
	if !cfg.Enabled() {
		logger.Info("analyzer disabled")
		return nil
	}
	a, err := kagome.New()
	if err != nil {
		logger.Warn("analyzer unavailable", slog.String("error", err.Error()))
		return nil
	}
	return a
}

// openPublishers connects to every configured publish target. A target that
// cannot be opened is still returned, as a publisher failing with the
// connection error, so the JSON output is produced regardless.
func openPublishers(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]generator.Publisher, func()) {
	var (
		pubs    []generator.Publisher
		closers []func()
	)
	if cfg.Generator.DryRun {
		logger.Info("dry run: publish targets not opened", slog.Any("targets", cfg.Generator.Publish))
	}

	for _, target := range cfg.Generator.Publish {
		if cfg.Generator.DryRun {
			pubs = append(pubs, unopenedPublisher{name: target})
			continue
		}
		switch target {
		case config.PublishPostgres:
			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				pubs = append(pubs, unopenedPublisher{name: target, err: fmt.Errorf("connect to database: %w", err)})
				continue
			}
			closers = append(closers, pool.Close)
			pubs = append(pubs, kanjiword.New(pool, postgres.NewTxManager(pool), cfg.Generator.BatchSize))
		case config.PublishSQLite:
			store, err := sqlite.Open(ctx, cfg.SQLite.Path, cfg.Generator.BatchSize)
			if err != nil {
				pubs = append(pubs, unopenedPublisher{name: target, err: fmt.Errorf("open sqlite: %w", err)})
				continue
			}
			closers = append(closers, func() { _ = store.Close() })
			pubs = append(pubs, store)
		}
	}

	return pubs, func() {
		for _, c := range closers {
			c()
		}
	}
}

// unopenedPublisher stands in for a target that was not opened: during a
// dry run it is never called, after a connection failure it returns err.
type unopenedPublisher struct {
	name string
	err  error
}

func (u unopenedPublisher) Name() string { return u.name }

func (u unopenedPublisher) ReplaceAll(context.Context, []domain.KanjiWord) (int, error) {
	return 0, u.err
}
