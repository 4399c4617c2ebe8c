package model

// ChargeKey is the derived, comparable fingerprint of a bill line: what the
// charge is, when, where, and how much. Built deterministically from a
// BillLine and immutable once built.
type ChargeKey struct {
	Date        string     // canonical YYYY-MM-DD, "" when unparseable
	Department  Department
	Detail      string // "" when no detail keyword matched
	Provider    string // trimmed, "" when absent
	AmountCents int64
	LineID      string // original or synthetic line identifier
}

// GroupLevel selects one of the four grouping strictness lenses applied to a
// ChargeKey. Different charge types have different uniqueness semantics, so
// consumers pick the lens appropriate to the charge rather than one universal
// key.
type GroupLevel int

const (
	// LevelExactDetail groups on date + department + detail.
	LevelExactDetail GroupLevel = iota
	// LevelDepartment groups on date + department.
	LevelDepartment
	// LevelDailyFee groups daily recurring-fee departments on date +
	// department; other departments are excluded.
	LevelDailyFee
	// LevelEpisode groups high-value episodic departments on department
	// alone (an episode may legitimately span midnight); other departments
	// are excluded.
	LevelEpisode
)

func (l GroupLevel) String() string {
	switch l {
	case LevelExactDetail:
		return "exact-detail"
	case LevelDepartment:
		return "department"
	case LevelDailyFee:
		return "daily-fee"
	case LevelEpisode:
		return "episode"
	}
	return "unknown"
}
