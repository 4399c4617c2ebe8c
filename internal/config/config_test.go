package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/billaudit/internal/model"
)

func TestValidate(t *testing.T) {
	bill := filepath.Join(t.TempDir(), "bill.json")
	if err := os.WriteFile(bill, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{FilePath: bill}, false},
		{"ok json format", Config{FilePath: bill, Format: "json"}, false},
		{"missing file flag", Config{}, true},
		{"file not on disk", Config{FilePath: filepath.Join(t.TempDir(), "nope.json")}, true},
		{"bad format", Config{FilePath: bill, Format: "xml"}, true},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateWithDSN(t *testing.T) {
	bill := filepath.Join(t.TempDir(), "bill.json")
	if err := os.WriteFile(bill, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{FilePath: bill}
	if err := cfg.ValidateWithDSN(); err == nil {
		t.Error("expected error with empty DSN")
	}
	cfg.DSN = "postgres://localhost/billaudit"
	if err := cfg.ValidateWithDSN(); err != nil {
		t.Errorf("ValidateWithDSN() = %v", err)
	}
}

func TestLoadTablesDefaults(t *testing.T) {
	cfg := Config{}
	text, tables, err := cfg.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tables.RevenueCodes["0250"] != model.DeptPharmacy {
		t.Error("expected built-in revenue codes")
	}
	if got := text.NormalizeText("ER visit"); got != "emergency room visit" {
		t.Errorf("expected built-in synonyms, got %q", got)
	}
}

func TestLoadTablesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	yaml := `
synonyms:
  icu: intensive care
revenue_codes:
  "020": intensive care
daily_fee_departments:
  - intensive care
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{TablesPath: path}
	text, tables, err := cfg.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	if got := text.NormalizeText("ICU stay"); got != "intensive care stay" {
		t.Errorf("override synonym not applied, got %q", got)
	}
	// Overridden sections replace wholesale.
	if got := text.NormalizeText("ER visit"); got != "er visit" {
		t.Errorf("synonym table should be replaced, got %q", got)
	}
	if tables.RevenueCodes["0250"] != "" {
		t.Error("revenue codes should be replaced wholesale")
	}
	if !tables.IsDailyFee(model.Department("intensive care")) {
		t.Error("override daily-fee set not applied")
	}
	// Untouched sections keep their defaults.
	if !tables.IsEpisode(model.DeptMRI) {
		t.Error("episode departments should keep defaults")
	}
}

func TestLoadTablesBadFile(t *testing.T) {
	cfg := Config{TablesPath: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, _, err := cfg.LoadTables(); err == nil {
		t.Error("expected error for missing tables file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("revenue_codes: [not, a, map]"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg = Config{TablesPath: path}
	if _, _, err := cfg.LoadTables(); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
