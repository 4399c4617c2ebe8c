package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gyeh/billaudit/internal/chargekey"
	"github.com/gyeh/billaudit/internal/model"
)

// Rule is one independent detection pass. Rules run in declaration order;
// the engine's dedup step resolves identical participant sets in favor of
// the earlier, stricter rule.
type Rule struct {
	ID     model.RuleID
	Title  string
	Detect func(*Context) []model.RuleMatch
}

// All lists the rules in precedence order R1..R7.
func All() []Rule {
	return []Rule{
		{ID: model.RuleExactRepeat, Title: "Exact repeat", Detect: detectExactRepeat},
		{ID: model.RuleSplitUnits, Title: "Split units by copy", Detect: detectSplitUnits},
		{ID: model.RuleDailyFeeTwice, Title: "Daily fee counted twice", Detect: detectDailyFeeTwice},
		{ID: model.RulePriceFingerprint, Title: "Price fingerprint repeat", Detect: detectPriceFingerprint},
		{ID: model.RuleBloodAggregate, Title: "Blood service aggregates", Detect: detectBloodAggregate},
		{ID: model.RulePharmacyRepeat, Title: "Pharmacy aggregates duplicate", Detect: detectPharmacyRepeat},
		{ID: model.RuleCrossSection, Title: "Cross-section mirror", Detect: detectCrossSection},
	}
}

// Words in a description that suggest the line is a legitimate per-unit
// charge rather than a straight copy. Matched as whole words, so
// "operating" never reads as "per".
var quantityWords = map[string]bool{
	"each": true, "per": true, "unit": true, "units": true,
	"dose": true, "doses": true, "push": true, "injection": true,
}

func hasQuantityWord(normDesc string) bool {
	for _, w := range strings.Fields(normDesc) {
		if quantityWords[w] {
			return true
		}
	}
	return false
}

// Transfer or crossover language that legitimizes two same-day daily fees.
var transferWords = []string{"transfer", "crossover", "late discharge"}

func centsKey(c int64) string { return strconv.FormatInt(c, 10) }

// monetary filters facts to those with a parseable charged amount.
func monetary(facts []*Fact) []*Fact {
	out := make([]*Fact, 0, len(facts))
	for _, f := range facts {
		if f.AmountOK {
			out = append(out, f)
		}
	}
	return out
}

// detectExactRepeat (R1): identical date, description, amount, and provider.
// The strictest signal in the set.
func detectExactRepeat(ctx *Context) []model.RuleMatch {
	groups := chargekey.GroupBy(monetary(ctx.Facts), func(f *Fact) string {
		if f.Date == "" || f.NormDesc == "" {
			return ""
		}
		return f.Date + "|" + f.NormDesc + "|" + centsKey(f.AmountCents) + "|" + f.Provider
	})

	var out []model.RuleMatch
	for _, k := range chargekey.SortedKeys(groups) {
		g := groups[k]
		if len(g) < 2 {
			continue
		}
		f := g[0]
		out = append(out, model.RuleMatch{
			Rule:       model.RuleExactRepeat,
			Category:   model.CategoryDefinite,
			LineIDs:    ids(g),
			Confidence: model.ConfidenceHigh,
			Reason: fmt.Sprintf("%d identical charges of $%s for %q on %s from the same provider",
				len(g), dollars(f.AmountCents), f.NormDesc, f.Date),
			Evidence: map[string]string{
				"date":        f.Date,
				"description": f.NormDesc,
				"amount":      dollars(f.AmountCents),
				"provider":    f.Provider,
				"count":       strconv.Itoa(len(g)),
			},
			SavingsCents: f.AmountCents * int64(len(g)-1),
		})
	}
	return out
}

// detectSplitUnits (R2): identical date, description, and amount regardless
// of provider. Downgraded to likely-duplicate when the group looks like a
// legitimate per-unit charge.
func detectSplitUnits(ctx *Context) []model.RuleMatch {
	groups := chargekey.GroupBy(monetary(ctx.Facts), func(f *Fact) string {
		if f.Date == "" || f.NormDesc == "" {
			return ""
		}
		return f.Date + "|" + f.NormDesc + "|" + centsKey(f.AmountCents)
	})

	var out []model.RuleMatch
	for _, k := range chargekey.SortedKeys(groups) {
		g := groups[k]
		if len(g) < 2 {
			continue
		}

		quantityLike := false
		for _, f := range g {
			if f.HasUnits || hasQuantityWord(f.NormDesc) {
				quantityLike = true
				break
			}
		}

		category, confidence := model.CategoryDefinite, model.ConfidenceHigh
		reason := fmt.Sprintf("%d copies of %q at $%s on %s", len(g), g[0].NormDesc, dollars(g[0].AmountCents), g[0].Date)
		if quantityLike {
			category, confidence = model.CategoryLikely, model.ConfidenceMedium
			reason += "; quantity language present, may be split units billed as copies"
		}

		out = append(out, model.RuleMatch{
			Rule:       model.RuleSplitUnits,
			Category:   category,
			LineIDs:    ids(g),
			Confidence: confidence,
			Reason:     reason,
			Evidence: map[string]string{
				"date":        g[0].Date,
				"description": g[0].NormDesc,
				"amount":      dollars(g[0].AmountCents),
				"count":       strconv.Itoa(len(g)),
			},
			SavingsCents: g[0].AmountCents * int64(len(g)-1),
		})
	}
	return out
}

// detectDailyFeeTwice (R3): more than one daily recurring fee (room and
// board, observation, recovery room) on one calendar day. Lines with
// unparseable amounts still count toward presence; savings only sum parsed
// amounts.
func detectDailyFeeTwice(ctx *Context) []model.RuleMatch {
	groups := chargekey.GroupBy(ctx.Facts, func(f *Fact) string {
		if f.Date == "" || !ctx.Tables.IsDailyFee(f.Dept) {
			return ""
		}
		return f.Date + "|" + string(f.Dept)
	})

	var out []model.RuleMatch
	for _, k := range chargekey.SortedKeys(groups) {
		g := groups[k]
		if len(g) < 2 {
			continue
		}

		transfer := false
		for _, f := range g {
			for _, w := range transferWords {
				if strings.Contains(f.NormDesc, w) {
					transfer = true
					break
				}
			}
			if transfer {
				break
			}
		}
		if transfer {
			continue
		}

		var sum int64
		for _, f := range g {
			sum += f.AmountCents
		}
		savings := sum - g[0].AmountCents
		if savings < 0 {
			savings = 0
		}

		out = append(out, model.RuleMatch{
			Rule:       model.RuleDailyFeeTwice,
			Category:   model.CategoryDefinite,
			LineIDs:    ids(g),
			Confidence: model.ConfidenceHigh,
			Reason: fmt.Sprintf("%d %s charges on %s; a daily fee should appear once per day",
				len(g), g[0].Dept, g[0].Date),
			Evidence: map[string]string{
				"date":       g[0].Date,
				"department": string(g[0].Dept),
				"count":      strconv.Itoa(len(g)),
			},
			SavingsCents: savings,
		})
	}
	return out
}

// detectPriceFingerprint (R4): same department, same day, same exact price
// under at least two different descriptions. Rewordings of one charge leave
// the price as a fingerprint.
func detectPriceFingerprint(ctx *Context) []model.RuleMatch {
	groups := chargekey.GroupBy(monetary(ctx.Facts), func(f *Fact) string {
		if f.Date == "" {
			return ""
		}
		return f.Date + "|" + string(f.Dept)
	})

	var out []model.RuleMatch
	for _, k := range chargekey.SortedKeys(groups) {
		byAmount := chargekey.GroupBy(groups[k], func(f *Fact) string {
			return centsKey(f.AmountCents)
		})
		for _, ak := range chargekey.SortedKeys(byAmount) {
			sub := byAmount[ak]
			if len(sub) < 2 {
				continue
			}
			distinct := make(map[string]bool)
			for _, f := range sub {
				distinct[f.NormDesc] = true
			}
			if len(distinct) < 2 {
				continue
			}
			out = append(out, model.RuleMatch{
				Rule:       model.RulePriceFingerprint,
				Category:   model.CategoryLikely,
				LineIDs:    ids(sub),
				Confidence: model.ConfidenceMedium,
				Reason: fmt.Sprintf("%d %s charges of exactly $%s on %s under %d different descriptions",
					len(sub), sub[0].Dept, dollars(sub[0].AmountCents), sub[0].Date, len(distinct)),
				Evidence: map[string]string{
					"date":         sub[0].Date,
					"department":   string(sub[0].Dept),
					"amount":       dollars(sub[0].AmountCents),
					"descriptions": strconv.Itoa(len(distinct)),
					"count":        strconv.Itoa(len(sub)),
				},
				SavingsCents: sub[0].AmountCents * int64(len(sub)-1),
			})
		}
	}
	return out
}

// detectBloodAggregate (R5): repeated equal-priced blood-service charges
// with no units anywhere to justify them. Blood products are normally
// billed as aggregates with a unit count.
func detectBloodAggregate(ctx *Context) []model.RuleMatch {
	blood := make([]*Fact, 0)
	for _, f := range monetary(ctx.Facts) {
		if f.Dept == model.DeptBloodServices {
			blood = append(blood, f)
		}
	}

	byAmount := chargekey.GroupBy(blood, func(f *Fact) string {
		return centsKey(f.AmountCents)
	})

	var out []model.RuleMatch
	for _, ak := range chargekey.SortedKeys(byAmount) {
		sub := byAmount[ak]
		if len(sub) < 2 {
			continue
		}
		hasUnits := false
		for _, f := range sub {
			if f.Units > 0 {
				hasUnits = true
				break
			}
		}
		if hasUnits {
			continue
		}
		out = append(out, model.RuleMatch{
			Rule:       model.RuleBloodAggregate,
			Category:   model.CategoryLikely,
			LineIDs:    ids(sub),
			Confidence: model.ConfidenceMedium,
			Reason: fmt.Sprintf("%d blood service charges of $%s with no unit counts; likely one aggregate billed repeatedly",
				len(sub), dollars(sub[0].AmountCents)),
			Evidence: map[string]string{
				"department": string(model.DeptBloodServices),
				"amount":     dollars(sub[0].AmountCents),
				"count":      strconv.Itoa(len(sub)),
			},
			SavingsCents: sub[0].AmountCents * int64(len(sub)-1),
		})
	}
	return out
}

// detectPharmacyRepeat (R6): pharmacy lines grouped per day. Equal amounts
// repeating is a definite duplicate; a day with several all-different
// amounts is surfaced as a needs-itemization review with zero claimed
// savings, so "couldn't tell" stays visible instead of being dropped.
func detectPharmacyRepeat(ctx *Context) []model.RuleMatch {
	pharmacy := make([]*Fact, 0)
	for _, f := range monetary(ctx.Facts) {
		if f.Dept == model.DeptPharmacy && f.Date != "" {
			pharmacy = append(pharmacy, f)
		}
	}

	byDate := chargekey.GroupBy(pharmacy, func(f *Fact) string { return f.Date })

	var out []model.RuleMatch
	for _, day := range chargekey.SortedKeys(byDate) {
		g := byDate[day]
		byAmount := chargekey.GroupBy(g, func(f *Fact) string {
			return centsKey(f.AmountCents)
		})

		repeated := false
		for _, ak := range chargekey.SortedKeys(byAmount) {
			sub := byAmount[ak]
			if len(sub) < 2 {
				continue
			}
			repeated = true
			out = append(out, model.RuleMatch{
				Rule:       model.RulePharmacyRepeat,
				Category:   model.CategoryDefinite,
				LineIDs:    ids(sub),
				Confidence: model.ConfidenceHigh,
				Reason: fmt.Sprintf("%d pharmacy charges of exactly $%s on %s",
					len(sub), dollars(sub[0].AmountCents), day),
				Evidence: map[string]string{
					"date":       day,
					"department": string(model.DeptPharmacy),
					"amount":     dollars(sub[0].AmountCents),
					"count":      strconv.Itoa(len(sub)),
				},
				SavingsCents: sub[0].AmountCents * int64(len(sub)-1),
			})
		}

		if !repeated && len(g) >= 2 {
			out = append(out, model.RuleMatch{
				Rule:       model.RulePharmacyRepeat,
				Category:   model.CategoryReview,
				LineIDs:    ids(g),
				Confidence: model.ConfidenceLow,
				Reason: fmt.Sprintf("%d pharmacy charges on %s with all-different amounts; request an itemized drug list",
					len(g), day),
				Evidence: map[string]string{
					"date":       day,
					"department": string(model.DeptPharmacy),
					"count":      strconv.Itoa(len(g)),
				},
				SavingsCents: 0,
			})
		}
	}
	return out
}

// detectCrossSection (R7): the same description and amount appearing in more
// than one section of the bill, across dates or departments. Credits are
// excluded so reversals don't pair with their originals.
func detectCrossSection(ctx *Context) []model.RuleMatch {
	groups := chargekey.GroupBy(monetary(ctx.Facts), func(f *Fact) string {
		if f.NormDesc == "" || f.AmountCents < 0 {
			return ""
		}
		return f.NormDesc + "|" + centsKey(f.AmountCents)
	})

	var out []model.RuleMatch
	for _, k := range chargekey.SortedKeys(groups) {
		g := groups[k]
		if len(g) < 2 {
			continue
		}
		dates := make(map[string]bool)
		depts := make(map[model.Department]bool)
		for _, f := range g {
			dates[f.Date] = true
			depts[f.Dept] = true
		}
		if len(dates) < 2 && len(depts) < 2 {
			continue
		}
		out = append(out, model.RuleMatch{
			Rule:       model.RuleCrossSection,
			Category:   model.CategoryDefinite,
			LineIDs:    ids(g),
			Confidence: model.ConfidenceHigh,
			Reason: fmt.Sprintf("%q at $%s appears %d times across %d dates and %d departments",
				g[0].NormDesc, dollars(g[0].AmountCents), len(g), len(dates), len(depts)),
			Evidence: map[string]string{
				"description": g[0].NormDesc,
				"amount":      dollars(g[0].AmountCents),
				"count":       strconv.Itoa(len(g)),
				"dates":       strconv.Itoa(len(dates)),
				"departments": strconv.Itoa(len(depts)),
			},
			SavingsCents: g[0].AmountCents * int64(len(g)-1),
		})
	}
	return out
}
