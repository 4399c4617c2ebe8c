// Package chargekey builds comparable fingerprints of bill lines and groups
// them under four strictness lenses.
package chargekey

import (
	"strings"

	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
)

// Build derives the ChargeKey for one line: classified department plus
// normalized date, provider, and amount. Pure function, no I/O; malformed
// fields degrade to their safe sentinels rather than failing.
func Build(line *model.BillLine, text *normalize.TextRules, tables *department.Tables) model.ChargeKey {
	normDesc := text.NormalizeText(line.Description)
	info := tables.Classify(normDesc, line.RevenueCode, line.CPTCode)

	return model.ChargeKey{
		Date:        normalize.NormalizeDate(line.DateOfService),
		Department:  info.Department,
		Detail:      info.Detail,
		Provider:    strings.TrimSpace(line.Provider),
		AmountCents: normalize.ParseMoney(line.Charged),
		LineID:      line.LineID,
	}
}

// GroupString renders the grouping key for one strictness level. An empty
// return means the key does not participate at that level.
func GroupString(key model.ChargeKey, level model.GroupLevel, tables *department.Tables) string {
	switch level {
	case model.LevelExactDetail:
		detail := key.Detail
		if detail == "" {
			detail = "no-detail"
		}
		return key.Date + "|" + string(key.Department) + "|" + detail
	case model.LevelDepartment:
		return key.Date + "|" + string(key.Department)
	case model.LevelDailyFee:
		if !tables.IsDailyFee(key.Department) {
			return ""
		}
		return key.Date + "|" + string(key.Department)
	case model.LevelEpisode:
		if !tables.IsEpisode(key.Department) {
			return ""
		}
		return string(key.Department)
	}
	return ""
}
