package model

// Department is a semantic hospital billing department, derived from revenue
// codes, procedure codes, or description keywords. Values are lowercase
// human-readable names so they survive round-trips through config files and
// report output unchanged.
type Department string

const (
	DeptPharmacy      Department = "pharmacy"
	DeptLaboratory    Department = "laboratory"
	DeptRadiology     Department = "radiology"
	DeptCTScan        Department = "ct scan"
	DeptMRI           Department = "mri"
	DeptEmergencyRoom Department = "emergency room"
	DeptRoomAndBoard  Department = "room and board"
	DeptObservation   Department = "observation"
	DeptRecoveryRoom  Department = "recovery room"
	DeptOperatingRoom Department = "operating room"
	DeptAnesthesia    Department = "anesthesia"
	DeptBloodServices Department = "blood services"
	DeptSurgery       Department = "surgery"
	DeptCardiology    Department = "cardiology"
	DeptPhysicalTher  Department = "physical therapy"
	DeptRespiratory   Department = "respiratory services"
	DeptSupplies      Department = "medical supplies"
	DeptUnknown       Department = "unknown"
)

// Trust is the ordered tier of the signal that classified a line into a
// department. It is a design-time trust ranking used for tie-breaking, not a
// statistical probability, so it is modeled as an ordinal enum rather than a
// float.
type Trust int

const (
	TrustUnknown Trust = iota // fallback classification
	TrustWeak                 // description keyword match
	TrustModerate             // procedure code range match
	TrustStrong               // revenue code match
)

// Weight reports the conventional 0..1 trust weight for display and wire
// output. Consumers must not do arithmetic on these values.
func (t Trust) Weight() float64 {
	switch t {
	case TrustStrong:
		return 0.95
	case TrustModerate:
		return 0.85
	case TrustWeak:
		return 0.75
	case TrustUnknown:
		return 0.1
	}
	return 0.1
}

func (t Trust) String() string {
	switch t {
	case TrustStrong:
		return "strong"
	case TrustModerate:
		return "moderate"
	case TrustWeak:
		return "weak"
	case TrustUnknown:
		return "unknown"
	}
	return "unknown"
}

// DepartmentInfo is the ephemeral classification result for one line.
// Recomputed on demand, never persisted.
type DepartmentInfo struct {
	Department Department `json:"department"`
	Detail     string     `json:"detail,omitempty"`
	Trust      Trust      `json:"-"`
}
