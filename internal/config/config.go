package config

import (
	"slices"
	"strings"
	"time"
)

// MaxBatchSize bounds generator.batch_size so that one multi-row INSERT
// stays within the bind parameter limits of both publish targets.
const MaxBatchSize = 4000

// Publish targets accepted by GeneratorConfig.Publish.
const (
	PublishPostgres = "postgres"
	PublishSQLite   = "sqlite"
)

// Config is the root application configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer"`
	Database  DatabaseConfig  `yaml:"database"`
	SQLite    SQLiteConfig    `yaml:"sqlite"`
	Log       LogConfig       `yaml:"log"`
}

// GeneratorConfig holds pipeline settings.
type GeneratorConfig struct {
	InputPath      string `yaml:"input_path"   env:"GENERATOR_INPUT_PATH"   env-default:"data/kanji-joyo.json"`
	OutputPath     string `yaml:"output_path"  env:"GENERATOR_OUTPUT_PATH"  env-default:"data/words-by-kanji.json"`
	CatalogPath    string `yaml:"catalog_path" env:"GENERATOR_CATALOG_PATH"`
	PublishRaw     string `yaml:"publish"      env:"GENERATOR_PUBLISH"`
	BatchSize      int    `yaml:"batch_size"   env:"GENERATOR_BATCH_SIZE"   env-default:"500"`
	DryRun         bool   `yaml:"dry_run"      env:"GENERATOR_DRY_RUN"`
	SampleKanjiRaw string `yaml:"sample_kanji" env:"GENERATOR_SAMPLE_KANJI" env-default:"日,水,学,人,山"`
	SampleSize     int    `yaml:"sample_size"  env:"GENERATOR_SAMPLE_SIZE"  env-default:"5"`

	// Publish is parsed from PublishRaw during validation.
	Publish []string `yaml:"-" env:"-"`
	// SampleKanji is parsed from SampleKanjiRaw during validation.
	SampleKanji []string `yaml:"-" env:"-"`
}

// PublishesTo reports whether target is among the configured publish targets.
func (c GeneratorConfig) PublishesTo(target string) bool {
	return slices.Contains(c.Publish, target)
}

// Analyzer backends accepted by AnalyzerConfig.Backend.
const (
	AnalyzerKagome = "kagome"
	AnalyzerNone   = "none"
)

// AnalyzerConfig holds morphological analyzer settings.
type AnalyzerConfig struct {
	Backend          string `yaml:"backend"           env:"ANALYZER_BACKEND"           env-default:"kagome"`
	SentencesPath    string `yaml:"sentences_path"    env:"ANALYZER_SENTENCES_PATH"`
	HiraganaReadings bool   `yaml:"hiragana_readings" env:"ANALYZER_HIRAGANA_READINGS" env-default:"false"`
}

// Enabled reports whether an analyzer backend is configured.
func (c AnalyzerConfig) Enabled() bool {
	return !strings.EqualFold(c.Backend, AnalyzerNone)
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is only required when publishing to postgres or running migrations.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds settings for the local SQLite export.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"data/words-by-kanji.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
