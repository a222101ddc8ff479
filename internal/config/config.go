// Package config loads pathquiz settings from an HCL file.
//
// A config file is optional. Every attribute is optional too; attributes left
// out keep their default. String attributes may interpolate the variables
// home, data_dir and cwd, e.g. export_path = "${data_dir}/results.xlsx".
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/abhisek/pathquiz/internal/export"
	"github.com/abhisek/pathquiz/internal/quiz"
	"github.com/abhisek/pathquiz/internal/vocab"
)

// EnvConfig overrides the default config file location.
const EnvConfig = "PATHQUIZ_CONFIG"

// Config is the decoded config file.
type Config struct {
	Questions     int      `hcl:"questions,optional" json:"questions"`
	MaxDepth      int      `hcl:"max_depth,optional" json:"max_depth"`
	MaxRegenerate int      `hcl:"max_regenerate,optional" json:"max_regenerate"`
	Vocabulary    []string `hcl:"vocabulary,optional" json:"vocabulary"`

	// ExportPath is where the results workbook is written.
	ExportPath string `hcl:"export_path,optional" json:"export_path"`

	// DBPath overrides the default database location. Flags and
	// PATHQUIZ_DB still take precedence.
	DBPath string `hcl:"db_path,optional" json:"db_path,omitempty"`

	LogFile  string `hcl:"log_file,optional" json:"log_file,omitempty"`
	LogLevel string `hcl:"log_level,optional" json:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	q := quiz.DefaultConfig()
	return &Config{
		Questions:     q.TotalQuestions,
		MaxDepth:      q.MaxDepth,
		MaxRegenerate: q.MaxRegenerate,
		Vocabulary:    vocab.Words(),
		ExportPath:    export.DefaultFileName,
		LogLevel:      "info",
	}
}

// Quiz returns the quiz engine settings.
func (c *Config) Quiz() quiz.Config {
	return quiz.Config{
		TotalQuestions: c.Questions,
		MaxDepth:       c.MaxDepth,
		Vocabulary:     c.Vocabulary,
		MaxRegenerate:  c.MaxRegenerate,
	}
}

// DefaultPath resolves the config file path:
// 1. PATHQUIZ_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/pathquiz/config.hcl
// 3. ~/.config/pathquiz/config.hcl
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pathquiz", "config.hcl"), nil
}

// DataDir returns the directory holding the database and logs.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pathquiz"), nil
}

// Load reads the config file at path. An empty path means DefaultPath, and
// a missing default file yields the defaults. A missing explicit file is an
// error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
		explicit = os.Getenv(EnvConfig) != ""
	}

	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes HCL source into a copy of the defaults and validates it.
// filename is only used in diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	cfg := Default()
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", filename, diags)
	}
	if err := decodeBody(filename, file.Body, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("parse %s: %w", path, diags)
	}
	return decodeBody(path, file.Body, cfg)
}

func decodeBody(filename string, body hcl.Body, cfg *Config) error {
	evalCtx, err := evalContext()
	if err != nil {
		return err
	}
	if diags := gohcl.DecodeBody(body, evalCtx, cfg); diags.HasErrors() {
		return fmt.Errorf("decode %s: %w", filename, diags)
	}
	return nil
}

// evalContext exposes the directories config strings may refer to.
func evalContext() (*hcl.EvalContext, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working dir: %w", err)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":     cty.StringVal(home),
			"data_dir": cty.StringVal(dataDir),
			"cwd":      cty.StringVal(cwd),
		},
	}, nil
}
