package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/normalize"
)

// Config holds all runtime configuration for a billaudit run.
type Config struct {
	FilePath   string // input bill lines (JSON array)
	OutPath    string // export destination (Parquet)
	TablesPath string // optional YAML overriding the domain tables
	DSN        string
	LogFormat  string // "text" or "json"
	Format     string // report output: "text" or "json"
	Addr       string // serve listen address

	Save            bool // persist analysis results to Postgres
	ApplyExclusions bool // run the valid-case filter inside the engine
}

// tablesFile is the on-disk YAML structure for domain table overrides. Any
// section left empty keeps its built-in default, so a file can override just
// the synonyms without restating every revenue code.
type tablesFile struct {
	Synonyms map[string]string `yaml:"synonyms"`
	Fillers  []string          `yaml:"fillers"`

	department.Tables `yaml:",inline"`
}

// LoadTables returns the text rules and domain tables, merging overrides
// from the configured YAML file when one is set.
func (c *Config) LoadTables() (normalize.TextRules, *department.Tables, error) {
	text := normalize.DefaultTextRules()
	tables := department.Default()

	if c.TablesPath == "" {
		return text, tables, nil
	}

	data, err := os.ReadFile(c.TablesPath)
	if err != nil {
		return text, nil, fmt.Errorf("read tables file: %w", err)
	}
	var tf tablesFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return text, nil, fmt.Errorf("parse tables file: %w", err)
	}

	if tf.Synonyms != nil || tf.Fillers != nil {
		syn := text.Synonyms
		fillers := text.Fillers
		if tf.Synonyms != nil {
			syn = tf.Synonyms
		}
		if tf.Fillers != nil {
			fillers = tf.Fillers
		}
		text = normalize.NewTextRules(syn, fillers)
	}

	if tf.RevenueCodes != nil {
		tables.RevenueCodes = tf.RevenueCodes
	}
	if tf.ProcedureRanges != nil {
		tables.ProcedureRanges = tf.ProcedureRanges
	}
	if tf.DepartmentKeywords != nil {
		tables.DepartmentKeywords = tf.DepartmentKeywords
	}
	if tf.DetailKeywords != nil {
		tables.DetailKeywords = tf.DetailKeywords
	}
	if tf.DailyFeeDepartments != nil {
		tables.DailyFeeDepartments = tf.DailyFeeDepartments
	}
	if tf.EpisodeDepartments != nil {
		tables.EpisodeDepartments = tf.EpisodeDepartments
	}
	if tf.ProgressionDepartments != nil {
		tables.ProgressionDepartments = tf.ProgressionDepartments
	}

	return text, tables, nil
}

// Validate checks required fields for file-based commands.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if c.Format != "" && c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("--format must be text or json")
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or BILLAUDIT_DB_URL is required")
	}
	return nil
}
