package rules

import "github.com/gyeh/billaudit/internal/model"

// IsValidCase reports whether two charges have a legitimate explanation and
// are therefore NOT duplicates of each other:
//
//   - the dates differ and the two departments are not both on the
//     clinical-progression path (ER -> observation -> room and board), so
//     this is ordinary care on different days;
//   - the providers differ (facility and professional billing are separate
//     legitimate charges);
//   - both are pharmacy or both are laboratory but their sub-detail differs
//     (two different drugs or two different test panels).
//
// The rule loop does not apply this filter by default; see Options.
func IsValidCase(a, b *Fact, ctx *Context) bool {
	if a.Date != b.Date {
		if !(ctx.Tables.IsProgression(a.Dept) && ctx.Tables.IsProgression(b.Dept)) {
			return true
		}
	}

	if a.Provider != "" && b.Provider != "" && a.Provider != b.Provider {
		return true
	}

	samePharmacy := a.Dept == model.DeptPharmacy && b.Dept == model.DeptPharmacy
	sameLab := a.Dept == model.DeptLaboratory && b.Dept == model.DeptLaboratory
	if (samePharmacy || sameLab) && a.Detail != "" && b.Detail != "" && a.Detail != b.Detail {
		return true
	}

	return false
}
