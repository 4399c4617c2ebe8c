package rules

import (
	"errors"
	"sort"
	"strings"

	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
)

// ErrNilInput signals a caller contract violation, distinct from every
// data-quality degradation (which never errors).
var ErrNilInput = errors.New("bill lines must not be nil")

// Options tunes engine behavior.
type Options struct {
	// ApplyExclusions runs IsValidCase over each match's participants and
	// drops matches where every pair has a legitimate explanation. Off by
	// default: the exclusion policy tightens precision but changes savings
	// totals, so it is opt-in.
	ApplyExclusions bool
}

// Run executes all seven rules over the bill and returns the deduplicated,
// savings-ranked match list. Deterministic: the same input slice always
// produces byte-identical output. Dirty fields degrade to sentinels and are
// skipped by the affected rule only; Run errors solely on a nil input slice.
func Run(lines []model.BillLine, text *normalize.TextRules, tables *department.Tables, opts Options) ([]model.RuleMatch, error) {
	if lines == nil {
		return nil, ErrNilInput
	}
	if text == nil {
		defText := normalize.DefaultTextRules()
		text = &defText
	}
	if tables == nil {
		tables = department.Default()
	}

	ctx := &Context{
		Facts:  buildFacts(lines, text, tables),
		Tables: tables,
	}

	var all []model.RuleMatch
	for _, rule := range All() {
		all = append(all, rule.Detect(ctx)...)
	}

	if opts.ApplyExclusions {
		all = filterValidCases(all, ctx)
	}

	return rank(dedup(all)), nil
}

// dedup drops later matches that flag the exact same set of lines as an
// earlier one. Rules run strictest first, so ties resolve toward the
// narrower evidence.
func dedup(matches []model.RuleMatch) []model.RuleMatch {
	seen := make(map[string]bool, len(matches))
	out := matches[:0]
	for _, m := range matches {
		sorted := append([]string(nil), m.LineIDs...)
		sort.Strings(sorted)
		key := strings.Join(sorted, ",")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// rank orders matches by descending potential savings, stable for equal
// savings so rule precedence shows through.
func rank(matches []model.RuleMatch) []model.RuleMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SavingsCents > matches[j].SavingsCents
	})
	return matches
}

// filterValidCases drops a match when every participant pair has a
// legitimate explanation per IsValidCase.
func filterValidCases(matches []model.RuleMatch, ctx *Context) []model.RuleMatch {
	byID := make(map[string]*Fact, len(ctx.Facts))
	for _, f := range ctx.Facts {
		byID[f.ID] = f
	}

	out := matches[:0]
	for _, m := range matches {
		if !allPairsValid(m.LineIDs, byID, ctx) {
			out = append(out, m)
		}
	}
	return out
}

func allPairsValid(lineIDs []string, byID map[string]*Fact, ctx *Context) bool {
	if len(lineIDs) < 2 {
		return false
	}
	for i := 0; i < len(lineIDs); i++ {
		for j := i + 1; j < len(lineIDs); j++ {
			a, b := byID[lineIDs[i]], byID[lineIDs[j]]
			if a == nil || b == nil {
				return false
			}
			if !IsValidCase(a, b, ctx) {
				return false
			}
		}
	}
	return true
}
