package model

import (
	"encoding/json"
	"fmt"
)

// RuleID identifies one of the seven duplicate-detection rules.
type RuleID string

const (
	RuleExactRepeat      RuleID = "R1"
	RuleSplitUnits       RuleID = "R2"
	RuleDailyFeeTwice    RuleID = "R3"
	RulePriceFingerprint RuleID = "R4"
	RuleBloodAggregate   RuleID = "R5"
	RulePharmacyRepeat   RuleID = "R6"
	RuleCrossSection     RuleID = "R7"
)

// Category is the severity tier of a finding, ordered P1 (definite
// duplicate) down to P4 (reviewed and valid).
type Category int

const (
	CategoryDefinite Category = iota + 1 // P1
	CategoryLikely                       // P2
	CategoryReview                       // P3
	CategoryValid                        // P4
)

func (c Category) String() string {
	switch c {
	case CategoryDefinite:
		return "P1"
	case CategoryLikely:
		return "P2"
	case CategoryReview:
		return "P3"
	case CategoryValid:
		return "P4"
	}
	return fmt.Sprintf("P?(%d)", int(c))
}

// Label is the consumer-facing name for the tier.
func (c Category) Label() string {
	switch c {
	case CategoryDefinite:
		return "Definite Duplicate"
	case CategoryLikely:
		return "Likely Duplicate"
	case CategoryReview:
		return "Needs Review"
	case CategoryValid:
		return "Not a Duplicate"
	}
	return "Unknown"
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "P1":
		*c = CategoryDefinite
	case "P2":
		*c = CategoryLikely
	case "P3":
		*c = CategoryReview
	case "P4":
		*c = CategoryValid
	default:
		return fmt.Errorf("unknown category %q", s)
	}
	return nil
}

// Confidence is the rule's own evidence strength, orthogonal to Category.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RuleMatch is one duplicate finding emitted by the rule engine.
// SavingsCents is always >= 0; for a group of N repeats it is
// amount x (N-1), since one occurrence is presumed legitimate.
type RuleMatch struct {
	Rule       RuleID            `json:"rule"`
	Category   Category          `json:"category"`
	LineIDs    []string          `json:"line_ids"`
	Evidence   map[string]string `json:"evidence,omitempty"`
	Reason     string            `json:"reason"`
	Confidence Confidence        `json:"confidence"`

	SavingsCents int64 `json:"savings_cents"`
}

// SavingsDollars reports the potential savings in dollars for display.
func (m *RuleMatch) SavingsDollars() float64 {
	return float64(m.SavingsCents) / 100
}
