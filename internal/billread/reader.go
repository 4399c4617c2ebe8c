// Package billread decodes extraction-pipeline output (a JSON array of bill
// line records) into model.BillLine values. Field decoding is lenient —
// amounts and units arrive as strings or numbers depending on the upstream
// extractor — but the top-level shape is a hard contract: anything other
// than a JSON array is a caller error.
package billread

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gyeh/billaudit/internal/model"
)

// flexString accepts a JSON string, number, or null.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*s = flexString(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", string(b))
}

// flexUnits accepts a JSON number, numeric string, or null, and remembers
// whether a value was present at all.
type flexUnits struct {
	value   float64
	present bool
}

func (u *flexUnits) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		u.value, u.present = f, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			// Garbage units degrade to absent, consistent with the rest
			// of the pipeline's handling of dirty fields.
			return nil
		}
		u.value, u.present = f, true
		return nil
	}
	return fmt.Errorf("expected number or string, got %s", string(b))
}

type wireLine struct {
	LineID        string     `json:"line_id"`
	Description   string     `json:"description"`
	DateOfService flexString `json:"date_of_service"`
	RevenueCode   flexString `json:"revenue_code"`
	CPTCode       flexString `json:"cpt_code"`
	Provider      string     `json:"provider"`
	Charged       flexString `json:"charged"`
	Units         flexUnits  `json:"units"`
}

// Decode reads a JSON array of bill lines from r.
func Decode(r io.Reader) ([]model.BillLine, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read bill lines: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("bill lines must be a JSON array, got %v", tok)
	}

	var lines []model.BillLine
	for dec.More() {
		var w wireLine
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("decode bill line %d: %w", len(lines)+1, err)
		}
		lines = append(lines, model.BillLine{
			LineID:        w.LineID,
			Description:   w.Description,
			DateOfService: string(w.DateOfService),
			RevenueCode:   string(w.RevenueCode),
			CPTCode:       string(w.CPTCode),
			Provider:      w.Provider,
			Charged:       string(w.Charged),
			Units:         w.Units.value,
			HasUnits:      w.Units.present,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read bill lines: %w", err)
	}

	if lines == nil {
		lines = []model.BillLine{}
	}
	return lines, nil
}

// ReadFile decodes bill lines from a JSON file on disk.
func ReadFile(path string) ([]model.BillLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bill file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
