package chargekey

import (
	"sort"

	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
)

// GroupBy buckets items by keyFn, preserving input order within each bucket.
// Items whose key is empty are excluded from the result. This is the single
// grouping primitive shared by the exploratory grouper and the rule engine.
func GroupBy[T any](items []T, keyFn func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, it := range items {
		k := keyFn(it)
		if k == "" {
			continue
		}
		out[k] = append(out[k], it)
	}
	return out
}

// SortedKeys returns the map's keys in sorted order. Grouping maps are
// always walked through this so repeated runs produce identical output.
func SortedKeys[T any](m map[string][]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Groups holds the four parallel grouping maps over a bill's charge keys.
type Groups struct {
	ExactDetail map[string][]model.ChargeKey
	Department  map[string][]model.ChargeKey
	DailyFee    map[string][]model.ChargeKey
	Episode     map[string][]model.ChargeKey
}

// GroupAll builds charge keys for every line and partitions them under all
// four strictness levels in one pass over the input.
func GroupAll(lines []model.BillLine, text *normalize.TextRules, tables *department.Tables) *Groups {
	keys := make([]model.ChargeKey, len(lines))
	for i := range lines {
		keys[i] = Build(&lines[i], text, tables)
	}

	levelFn := func(level model.GroupLevel) func(model.ChargeKey) string {
		return func(k model.ChargeKey) string { return GroupString(k, level, tables) }
	}

	return &Groups{
		ExactDetail: GroupBy(keys, levelFn(model.LevelExactDetail)),
		Department:  GroupBy(keys, levelFn(model.LevelDepartment)),
		DailyFee:    GroupBy(keys, levelFn(model.LevelDailyFee)),
		Episode:     GroupBy(keys, levelFn(model.LevelEpisode)),
	}
}
