package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration
// and fills the parsed fields (Publish, SampleKanji).
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Generator.InputPath) == "" {
		add("generator.input_path", "required")
	}
	if strings.TrimSpace(c.Generator.OutputPath) == "" {
		add("generator.output_path", "required")
	}
	if c.Generator.BatchSize <= 0 || c.Generator.BatchSize > MaxBatchSize {
		add("generator.batch_size", "must be in 1..%d (got %d)", MaxBatchSize, c.Generator.BatchSize)
	}
	if c.Generator.SampleSize < 0 {
		add("generator.sample_size", "must be >= 0 (got %d)", c.Generator.SampleSize)
	}

	publish, err := ParsePublishTargets(c.Generator.PublishRaw)
	if err != nil {
		add("generator.publish", "%v", err)
	}
	c.Generator.Publish = publish

	sample, err := ParseSampleKanji(c.Generator.SampleKanjiRaw)
	if err != nil {
		add("generator.sample_kanji", "%v", err)
	}
	c.Generator.SampleKanji = sample

	if c.Generator.PublishesTo(PublishPostgres) && c.Database.DSN == "" {
		add("database.dsn", "required when publishing to %s", PublishPostgres)
	}
	if c.Generator.PublishesTo(PublishSQLite) && c.SQLite.Path == "" {
		add("sqlite.path", "required when publishing to %s", PublishSQLite)
	}

	switch strings.ToLower(strings.TrimSpace(c.Analyzer.Backend)) {
	case AnalyzerKagome, AnalyzerNone:
	default:
		add("analyzer.backend", "unknown backend %q", c.Analyzer.Backend)
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error", "":
	default:
		add("log.level", "unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "json", "text", "":
	default:
		add("log.format", "unknown format %q", c.Log.Format)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ParsePublishTargets parses a comma-separated list of publish targets
// (e.g. "postgres,sqlite"). An empty string returns a nil slice.
// Duplicates are dropped.
func ParsePublishTargets(raw string) ([]string, error) {
	var targets []string
	for _, p := range splitList(raw) {
		p = strings.ToLower(p)
		switch p {
		case PublishPostgres, PublishSQLite:
		default:
			return nil, fmt.Errorf("unknown publish target %q", p)
		}
		if !slices.Contains(targets, p) {
			targets = append(targets, p)
		}
	}
	return targets, nil
}

// ParseSampleKanji parses a comma-separated list of single characters
// (e.g. "日,水,学"). An empty string returns a nil slice.
func ParseSampleKanji(raw string) ([]string, error) {
	parts := splitList(raw)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if utf8.RuneCountInString(p) != 1 {
			return nil, fmt.Errorf("%q is not a single character", p)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
