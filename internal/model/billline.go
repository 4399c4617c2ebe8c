package model

// BillLine is one charge appearing on a bill, as produced by the upstream
// extraction pipeline. All fields are best-effort: descriptions may be noisy
// OCR output, dates and amounts may be malformed, codes may be absent.
type BillLine struct {
	LineID        string `json:"line_id,omitempty"`
	Description   string `json:"description"`
	DateOfService string `json:"date_of_service,omitempty"`
	RevenueCode   string `json:"revenue_code,omitempty"`
	CPTCode       string `json:"cpt_code,omitempty"`
	Provider      string `json:"provider,omitempty"`

	// Charged is the raw charged-amount text ("$1,234.56", "(50.00)", "380").
	// Parsing to cents happens in normalize.ParseMoney; unparseable input
	// resolves to zero cents, which consumers treat as "unknown amount".
	Charged string `json:"charged"`

	// Units is the billed quantity. HasUnits distinguishes "0 units" from
	// "units column absent", which rule R5 cares about.
	Units    float64 `json:"units,omitempty"`
	HasUnits bool    `json:"-"`
}
