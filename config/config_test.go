package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/annot/pipeline"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Pipeline.MaxLength != 1<<20 {
		t.Errorf("expected default max length %d, got %d", 1<<20, cfg.Pipeline.MaxLength)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"ssplit alias", func(c *Config) { c.Pipeline.Stages = []string{"tokenize", "ssplit"} }, false},
		{"unknown stage", func(c *Config) { c.Pipeline.Stages = []string{"coref"} }, true},
		{"unknown disabled stage", func(c *Config) { c.Pipeline.Disable = []string{"coref"} }, true},
		{"negative workers", func(c *Config) { c.Pipeline.Workers = -1 }, true},
		{"negative max length", func(c *Config) { c.Pipeline.MaxLength = -1 }, true},
		{"negative max span", func(c *Config) { c.NER.MaxSpan = -2 }, true},
		{"bad lexicon", func(c *Config) { c.Lexicon = map[string]string{"x": "NN:2"} }, true},
		{"empty gazetteer label", func(c *Config) { c.NER.Gazetteer = map[string]string{"acme": ""} }, true},
		{"bad lemma class", func(c *Config) { c.Lemmas = []LemmaException{{Class: "DET", Form: "a", Lemma: "a"}} }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

const yamlConfig = `
pipeline:
  disable: [parse]
  workers: 2
tokenizer:
  abbreviations: ["Bd."]
ner:
  max_span: 4
  gazetteer:
    "Acme Widgets": ORGANIZATION
lexicon:
  zyzzx: "NNP"
lemmas:
  - {class: NOUN, form: octopi, lemma: octopus}
log:
  level: debug
`

const tomlConfig = `
[pipeline]
disable = ["parse"]
workers = 2

[tokenizer]
abbreviations = ["Bd."]

[ner]
max_span = 4

[ner.gazetteer]
"Acme Widgets" = "ORGANIZATION"

[lexicon]
zyzzx = "NNP"

[[lemmas]]
class = "NOUN"
form = "octopi"
lemma = "octopus"

[log]
level = "debug"
`

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{"annot.yaml": yamlConfig, "annot.toml": tomlConfig} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile() error = %v", err)
			}

			if cfg.Pipeline.Workers != 2 {
				t.Errorf("expected 2 workers, got %d", cfg.Pipeline.Workers)
			}
			if len(cfg.Pipeline.Disable) != 1 || cfg.Pipeline.Disable[0] != "parse" {
				t.Errorf("unexpected disable %v", cfg.Pipeline.Disable)
			}
			if cfg.NER.Gazetteer["Acme Widgets"] != "ORGANIZATION" {
				t.Errorf("unexpected gazetteer %v", cfg.NER.Gazetteer)
			}
			if len(cfg.Lemmas) != 1 || cfg.Lemmas[0].Lemma != "octopus" {
				t.Errorf("unexpected lemmas %v", cfg.Lemmas)
			}
			if cfg.Pipeline.MaxLength != 1<<20 {
				t.Errorf("default max length not kept, got %d", cfg.Pipeline.MaxLength)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	ini := filepath.Join(dir, "annot.ini")
	if err := os.WriteFile(ini, []byte("x=1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(ini); err == nil {
		t.Error("expected error for unsupported extension")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pipeline: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Pipeline.Workers = 3
	cfg.Lexicon = map[string]string{"zyzzx": "NNP"}

	for _, name := range []string{"out.yaml", "nested/out.toml"} {
		path := filepath.Join(dir, name)
		if err := cfg.SaveToFile(path); err != nil {
			t.Fatalf("SaveToFile(%s) error = %v", name, err)
		}

		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile(%s) error = %v", name, err)
		}
		if loaded.Pipeline.Workers != 3 || loaded.Lexicon["zyzzx"] != "NNP" {
			t.Errorf("%s: config not preserved: %+v", name, loaded)
		}
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.Pipeline.Disable = []string{"parse"}
	base.Lexicon = map[string]string{"a": "DT"}

	other := &Config{
		Pipeline: PipelineConfig{Disable: []string{"ner"}, Workers: 4},
		Lexicon:  map[string]string{"b": "NN"},
		Log:      LogConfig{Level: "debug"},
	}

	base.Merge(other)
	base.Merge(nil)

	if base.Pipeline.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", base.Pipeline.Workers)
	}
	if len(base.Pipeline.Disable) != 2 {
		t.Errorf("expected both disabled stages, got %v", base.Pipeline.Disable)
	}
	if base.Lexicon["a"] != "DT" || base.Lexicon["b"] != "NN" {
		t.Errorf("lexicon not merged: %v", base.Lexicon)
	}
	if base.Pipeline.MaxLength != 1<<20 {
		t.Errorf("zero value overrode max length")
	}
	if base.Log.Level != "debug" {
		t.Errorf("expected level debug, got %s", base.Log.Level)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.Disable = []string{"parse"}
	cfg.Lexicon = map[string]string{"zyzzx": "NNP"}
	cfg.NER.Gazetteer = map[string]string{"Zyzzx": "ORGANIZATION"}
	cfg.Lemmas = []LemmaException{{Class: "*", Form: "gonna", Lemma: "go"}}
	cfg.Tokenizer.Abbreviations = []string{"bd."}

	opts, err := cfg.Options(nil, nil)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	p, err := pipeline.New(opts)
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}
	if p.Enabled(pipeline.Parse) {
		t.Error("parse should be disabled")
	}

	doc, err := p.Annotate(context.Background(), "I met Zyzzx in bd. nine.")
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	tokens := doc.Tokens()
	if tokens[2].Tag != "NNP" {
		t.Errorf("lexicon entry not used, tag %s", tokens[2].Tag)
	}
	if tokens[2].Ent != "ORGANIZATION" {
		t.Errorf("gazetteer entry not used, label %s", tokens[2].Ent)
	}
	if tokens[4].Text != "bd." || !tokens[4].Abbrev {
		t.Errorf("abbreviation not used, token %+v", tokens[4])
	}
}

func TestOptionsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.Stages = []string{"nope"}

	if _, err := cfg.Options(nil, nil); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestLoader(t *testing.T) {
	home := t.TempDir()
	userDir := filepath.Join(home, UserConfigDir)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, UserConfigFile), []byte("pipeline:\n  workers: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(nil)
	l.home = home

	cfg, err := l.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pipeline.Workers != 7 {
		t.Errorf("user config not loaded, workers %d", cfg.Pipeline.Workers)
	}

	project := filepath.Join(t.TempDir(), "annot.toml")
	if err := os.WriteFile(project, []byte("[pipeline]\nworkers = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = l.Load(project)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pipeline.Workers != 2 {
		t.Errorf("file config should take precedence, workers %d", cfg.Pipeline.Workers)
	}

	if _, err := l.Load(filepath.Join(home, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
