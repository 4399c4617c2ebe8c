package department

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gyeh/billaudit/internal/model"
)

var nonDigit = regexp.MustCompile(`[^0-9]`)

// Classify assigns a department to a line using the first signal that fires,
// in fidelity order: revenue code (strong), procedure code range (moderate),
// description keyword (weak), then unknown. Structured codes are never
// overridden by free-text keywords when both are present.
//
// normDesc must already be in normalize.NormalizeText form. Detail
// extraction always runs against normDesc, independent of which tier
// classified the department.
func (t *Tables) Classify(normDesc, revenueCode, cptCode string) model.DepartmentInfo {
	detail := t.extractDetail(normDesc)

	if dept, ok := t.lookupRevenueCode(revenueCode); ok {
		return model.DepartmentInfo{Department: dept, Detail: detail, Trust: model.TrustStrong}
	}
	if dept, ok := t.lookupProcedureCode(cptCode); ok {
		return model.DepartmentInfo{Department: dept, Detail: detail, Trust: model.TrustModerate}
	}
	if dept, ok := t.lookupKeywords(normDesc); ok {
		return model.DepartmentInfo{Department: dept, Detail: detail, Trust: model.TrustWeak}
	}
	return model.DepartmentInfo{Department: model.DeptUnknown, Detail: detail, Trust: model.TrustUnknown}
}

// lookupRevenueCode normalizes the code to digits and checks the table with
// exact then prefix semantics, so 4-digit specific codes fall back to their
// 3-digit category.
func (t *Tables) lookupRevenueCode(code string) (model.Department, bool) {
	digits := nonDigit.ReplaceAllString(code, "")
	if digits == "" {
		return "", false
	}
	// Revenue codes are conventionally 4 digits with a leading zero.
	if len(digits) == 3 {
		digits = "0" + digits
	}
	if dept, ok := t.RevenueCodes[digits]; ok {
		return dept, true
	}
	if len(digits) >= 3 {
		if dept, ok := t.RevenueCodes[digits[:3]]; ok {
			return dept, true
		}
	}
	return "", false
}

func (t *Tables) lookupProcedureCode(code string) (model.Department, bool) {
	digits := nonDigit.ReplaceAllString(code, "")
	if digits == "" {
		return "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	for _, r := range t.ProcedureRanges {
		if n >= r.Lo && n <= r.Hi {
			return r.Department, true
		}
	}
	return "", false
}

func (t *Tables) lookupKeywords(normDesc string) (model.Department, bool) {
	if normDesc == "" {
		return "", false
	}
	for _, e := range t.DepartmentKeywords {
		for _, kw := range e.Keywords {
			if strings.Contains(normDesc, kw) {
				return e.Department, true
			}
		}
	}
	return "", false
}

func (t *Tables) extractDetail(normDesc string) string {
	if normDesc == "" {
		return ""
	}
	for _, e := range t.DetailKeywords {
		for _, kw := range e.Keywords {
			if strings.Contains(normDesc, kw) {
				return e.Detail
			}
		}
	}
	return ""
}
