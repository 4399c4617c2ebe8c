package department

import (
	"testing"

	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
)

func TestClassifyRevenueCode(t *testing.T) {
	tables := Default()

	tests := []struct {
		code string
		want model.Department
	}{
		{"0250", model.DeptPharmacy},
		{"250", model.DeptPharmacy},  // 3-digit form gets a leading zero
		{"0259", model.DeptPharmacy}, // prefix match on 025
		{"0450", model.DeptEmergencyRoom},
		{"0121", model.DeptRoomAndBoard},
		{"0762", model.DeptObservation},
		{"0380", model.DeptBloodServices},
	}
	for _, tt := range tests {
		info := tables.Classify("", tt.code, "")
		if info.Department != tt.want {
			t.Errorf("Classify(rev=%q) = %q, want %q", tt.code, info.Department, tt.want)
		}
		if info.Trust != model.TrustStrong {
			t.Errorf("Classify(rev=%q) trust = %v, want strong", tt.code, info.Trust)
		}
	}
}

func TestClassifyProcedureRange(t *testing.T) {
	tables := Default()

	tests := []struct {
		code string
		want model.Department
	}{
		{"99283", model.DeptEmergencyRoom},
		{"71046", model.DeptRadiology},
		{"80048", model.DeptLaboratory},
		{"27130", model.DeptSurgery},
	}
	for _, tt := range tests {
		info := tables.Classify("", "", tt.code)
		if info.Department != tt.want {
			t.Errorf("Classify(cpt=%q) = %q, want %q", tt.code, info.Department, tt.want)
		}
		if info.Trust != model.TrustModerate {
			t.Errorf("Classify(cpt=%q) trust = %v, want moderate", tt.code, info.Trust)
		}
	}
}

func TestClassifyKeywordFallback(t *testing.T) {
	tables := Default()
	text := normalize.DefaultTextRules()

	info := tables.Classify(text.NormalizeText("Chest X-Ray 2 Views"), "", "")
	if info.Department != model.DeptRadiology {
		t.Errorf("keyword classification = %q, want radiology", info.Department)
	}
	if info.Trust != model.TrustWeak {
		t.Errorf("trust = %v, want weak", info.Trust)
	}
}

func TestClassifyCodeBeatsKeyword(t *testing.T) {
	tables := Default()
	// Description says x ray but the revenue code says pharmacy; the
	// structured code wins.
	info := tables.Classify("chest x ray", "0250", "")
	if info.Department != model.DeptPharmacy {
		t.Errorf("got %q, want pharmacy from revenue code", info.Department)
	}
}

func TestClassifyUnknown(t *testing.T) {
	tables := Default()
	info := tables.Classify("zzzz qqqq", "", "")
	if info.Department != model.DeptUnknown {
		t.Errorf("got %q, want unknown", info.Department)
	}
	if info.Trust != model.TrustUnknown {
		t.Errorf("trust = %v, want unknown", info.Trust)
	}
	if info.Trust.Weight() != 0.1 {
		t.Errorf("unknown weight = %v, want 0.1", info.Trust.Weight())
	}
}

func TestDetailExtraction(t *testing.T) {
	tables := Default()
	text := normalize.DefaultTextRules()

	tests := []struct {
		desc string
		want string
	}{
		{"Basic Metabolic Panel", "chemistry"},
		{"CBC w/ diff", "hematology"},
		{"Room - Semi Private", "semi-private"},
		{"ER Visit Level 3", "level 3"},
		{"Something unrelated", ""},
	}
	for _, tt := range tests {
		info := tables.Classify(text.NormalizeText(tt.desc), "", "")
		if info.Detail != tt.want {
			t.Errorf("detail for %q = %q, want %q", tt.desc, info.Detail, tt.want)
		}
	}
}

func TestTrustOrdering(t *testing.T) {
	if !(model.TrustStrong > model.TrustModerate &&
		model.TrustModerate > model.TrustWeak &&
		model.TrustWeak > model.TrustUnknown) {
		t.Error("trust tiers must be ordered strong > moderate > weak > unknown")
	}
}

func TestDepartmentSets(t *testing.T) {
	tables := Default()
	if !tables.IsDailyFee(model.DeptRoomAndBoard) {
		t.Error("room and board should be a daily fee department")
	}
	if tables.IsDailyFee(model.DeptPharmacy) {
		t.Error("pharmacy should not be a daily fee department")
	}
	if !tables.IsEpisode(model.DeptMRI) {
		t.Error("mri should be an episode department")
	}
	if !tables.IsProgression(model.DeptEmergencyRoom) {
		t.Error("emergency room should be on the progression path")
	}
}
