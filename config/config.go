// Package config loads the annot configuration and builds pipeline options
// from it.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/revelaction/annot/lemma"
	"github.com/revelaction/annot/ner"
	"github.com/revelaction/annot/pipeline"
	"github.com/revelaction/annot/pos"
)

// Config is the complete annot configuration. Files are YAML or TOML,
// chosen by extension.
type Config struct {
	Pipeline  PipelineConfig    `yaml:"pipeline" toml:"pipeline"`
	Tokenizer TokenizerConfig   `yaml:"tokenizer" toml:"tokenizer"`
	NER       NERConfig         `yaml:"ner" toml:"ner"`
	Lexicon   map[string]string `yaml:"lexicon" toml:"lexicon"`
	Lemmas    []LemmaException  `yaml:"lemmas" toml:"lemmas"`
	Log       LogConfig         `yaml:"log" toml:"log"`
}

// PipelineConfig selects the stages and bounds the work of a request.
type PipelineConfig struct {
	// Stages is the explicit list of enabled stages (empty = all)
	Stages []string `yaml:"stages" toml:"stages"`
	// Disable removes stages and their dependents
	Disable []string `yaml:"disable" toml:"disable"`
	// Workers bounds the sentences annotated at once (0 = GOMAXPROCS)
	Workers int `yaml:"workers" toml:"workers"`
	// MaxLength is the maximum text length in runes (0 = no limit)
	MaxLength int `yaml:"max_length" toml:"max_length"`
	// SkipNormalize disables NFC normalization of the input
	SkipNormalize bool `yaml:"skip_normalize" toml:"skip_normalize"`
}

// TokenizerConfig extends or replaces the tokenizer tables.
type TokenizerConfig struct {
	// Abbreviations are added to the built in set
	Abbreviations []string `yaml:"abbreviations" toml:"abbreviations"`
	// ReplaceAbbreviations makes Abbreviations the only set
	ReplaceAbbreviations bool `yaml:"replace_abbreviations" toml:"replace_abbreviations"`
	// Clitics replaces the clitic suffix table when not empty
	Clitics []string `yaml:"clitics" toml:"clitics"`
}

// NERConfig configures the entity recognizer.
type NERConfig struct {
	// MaxSpan is the longest entity in tokens (0 = default)
	MaxSpan int `yaml:"max_span" toml:"max_span"`
	// Gazetteer maps phrases to entity labels
	Gazetteer map[string]string `yaml:"gazetteer" toml:"gazetteer"`
}

// LemmaException overrides the lemma of a form.
type LemmaException struct {
	Class string `yaml:"class" toml:"class"`
	Form  string `yaml:"form" toml:"form"`
	Lemma string `yaml:"lemma" toml:"lemma"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" toml:"level"`
}

// Default returns a Config with the defaults.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MaxLength: 1 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := pipeline.ParseStages(c.Pipeline.Stages); err != nil {
		return fmt.Errorf("pipeline.stages: %w", err)
	}
	if _, err := pipeline.ParseStages(c.Pipeline.Disable); err != nil {
		return fmt.Errorf("pipeline.disable: %w", err)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must not be negative")
	}
	if c.Pipeline.MaxLength < 0 {
		return fmt.Errorf("pipeline.max_length must not be negative")
	}
	if c.NER.MaxSpan < 0 {
		return fmt.Errorf("ner.max_span must not be negative")
	}

	for form, entry := range c.Lexicon {
		if _, err := pos.ParseEntry(entry); err != nil {
			return fmt.Errorf("lexicon %q: %w", form, err)
		}
	}

	for phrase, label := range c.NER.Gazetteer {
		if strings.TrimSpace(phrase) == "" || label == "" {
			return fmt.Errorf("ner.gazetteer: empty phrase or label")
		}
	}

	for i, e := range c.Lemmas {
		switch e.Class {
		case lemma.Noun, lemma.Verb, lemma.Adj, lemma.Adv, lemma.Any:
		default:
			return fmt.Errorf("lemmas[%d]: invalid class %q", i, e.Class)
		}
		if e.Form == "" || e.Lemma == "" {
			return fmt.Errorf("lemmas[%d]: form and lemma are required", i)
		}
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// LoadFromFile loads configuration from a YAML (.yaml, .yml) or TOML
// (.toml) file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}

	return config, nil
}

// SaveToFile writes the configuration, in the format of the extension of
// path.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var err error
		if data, err = yaml.Marshal(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges other into c. Non zero values of other take precedence,
// maps are merged key by key and lists are appended.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Pipeline
	if len(other.Pipeline.Stages) > 0 {
		c.Pipeline.Stages = other.Pipeline.Stages
	}
	c.Pipeline.Disable = append(c.Pipeline.Disable, other.Pipeline.Disable...)
	if other.Pipeline.Workers != 0 {
		c.Pipeline.Workers = other.Pipeline.Workers
	}
	if other.Pipeline.MaxLength != 0 {
		c.Pipeline.MaxLength = other.Pipeline.MaxLength
	}
	if other.Pipeline.SkipNormalize {
		c.Pipeline.SkipNormalize = true
	}

	// Tokenizer
	c.Tokenizer.Abbreviations = append(c.Tokenizer.Abbreviations, other.Tokenizer.Abbreviations...)
	if other.Tokenizer.ReplaceAbbreviations {
		c.Tokenizer.ReplaceAbbreviations = true
	}
	if len(other.Tokenizer.Clitics) > 0 {
		c.Tokenizer.Clitics = other.Tokenizer.Clitics
	}

	// NER
	if other.NER.MaxSpan != 0 {
		c.NER.MaxSpan = other.NER.MaxSpan
	}
	c.NER.Gazetteer = mergeMap(c.NER.Gazetteer, other.NER.Gazetteer)

	c.Lexicon = mergeMap(c.Lexicon, other.Lexicon)
	c.Lemmas = append(c.Lemmas, other.Lemmas...)

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

func mergeMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Options builds the pipeline options of the configuration: the reference
// models extended with the configured lexicon, gazetteer and lemma
// exceptions.
func (c *Config) Options(logger *slog.Logger, metrics *pipeline.Metrics) (pipeline.Options, error) {
	if err := c.Validate(); err != nil {
		return pipeline.Options{}, err
	}

	stages, _ := pipeline.ParseStages(c.Pipeline.Stages)
	if len(stages) == 0 {
		stages = nil
	}
	disable, _ := pipeline.ParseStages(c.Pipeline.Disable)

	tagger := pos.NewModel()
	for form, entry := range c.Lexicon {
		if err := tagger.AddEntry(form, entry); err != nil {
			return pipeline.Options{}, err
		}
	}

	nerModel := ner.NewModel()
	for phrase, label := range c.NER.Gazetteer {
		nerModel.Add(phrase, label)
	}

	lemmatizer := lemma.New()
	for _, e := range c.Lemmas {
		lemmatizer.AddException(e.Class, e.Form, e.Lemma)
	}

	opts := pipeline.Options{
		Stages:        stages,
		Disable:       disable,
		SkipNormalize: c.Pipeline.SkipNormalize,
		Tagger:        tagger,
		NERModel:      nerModel,
		Lemmatizer:    lemmatizer,
		MaxSpan:       c.NER.MaxSpan,
		Workers:       c.Pipeline.Workers,
		MaxLength:     c.Pipeline.MaxLength,
		Logger:        logger,
		Metrics:       metrics,
	}

	if len(c.Tokenizer.Clitics) > 0 {
		opts.Clitics = c.Tokenizer.Clitics
	}
	if c.Tokenizer.ReplaceAbbreviations {
		opts.Abbreviations = append([]string{}, c.Tokenizer.Abbreviations...)
	} else {
		opts.ExtraAbbreviations = c.Tokenizer.Abbreviations
	}

	return opts, nil
}

// ParseLevel parses a log level name. Empty is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
