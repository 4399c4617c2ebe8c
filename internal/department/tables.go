// Package department classifies bill lines into semantic hospital
// departments using three cascading signals: revenue code, procedure code
// range, then description keywords. Higher-fidelity signals always win.
package department

import "github.com/gyeh/billaudit/internal/model"

// CodeRange maps a numeric procedure-code interval to a department.
type CodeRange struct {
	Lo         int              `yaml:"lo"`
	Hi         int              `yaml:"hi"`
	Department model.Department `yaml:"department"`
}

// KeywordEntry maps a department to the description keywords that imply it.
// Entries are ordered; the first department with any matching keyword wins.
type KeywordEntry struct {
	Department model.Department `yaml:"department"`
	Keywords   []string         `yaml:"keywords"`
}

// DetailEntry maps a sub-detail label to its description keywords.
type DetailEntry struct {
	Detail   string   `yaml:"detail"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds every domain lookup table the classifier and rule engine
// consume. The tables encode revisable domain knowledge, so they are data:
// defaults ship in code and any section can be overridden from a YAML file.
type Tables struct {
	// RevenueCodes maps digits-only revenue codes to departments. Keys are
	// either 4-digit specific codes ("0250") or 3-digit category prefixes
	// ("045") that match any 4-digit code sharing the prefix.
	RevenueCodes map[string]model.Department `yaml:"revenue_codes"`

	ProcedureRanges    []CodeRange    `yaml:"procedure_ranges"`
	DepartmentKeywords []KeywordEntry `yaml:"department_keywords"`
	DetailKeywords     []DetailEntry  `yaml:"detail_keywords"`

	// DailyFeeDepartments accrue one charge per calendar day; two same-day
	// charges are almost never legitimate.
	DailyFeeDepartments []model.Department `yaml:"daily_fee_departments"`
	// EpisodeDepartments bill once per encounter regardless of date, since
	// an episode may legitimately span midnight.
	EpisodeDepartments []model.Department `yaml:"episode_departments"`
	// ProgressionDepartments form legitimate patient-movement paths
	// (ER -> observation -> room and board) across days.
	ProgressionDepartments []model.Department `yaml:"progression_departments"`
}

// Default returns the built-in lookup tables.
func Default() *Tables {
	return &Tables{
		RevenueCodes: map[string]model.Department{
			// Room and board category codes (011x-016x).
			"011": model.DeptRoomAndBoard,
			"012": model.DeptRoomAndBoard,
			"013": model.DeptRoomAndBoard,
			"014": model.DeptRoomAndBoard,
			"015": model.DeptRoomAndBoard,
			"016": model.DeptRoomAndBoard,

			"025": model.DeptPharmacy,
			"0250": model.DeptPharmacy,
			"0258": model.DeptPharmacy, // IV solutions
			"026":  model.DeptPharmacy, // IV therapy
			"027":  model.DeptSupplies,
			"030":  model.DeptLaboratory,
			"031":  model.DeptLaboratory,
			"032":  model.DeptRadiology,
			"035":  model.DeptCTScan,
			"036":  model.DeptOperatingRoom,
			"037":  model.DeptAnesthesia,
			"038":  model.DeptBloodServices,
			"039":  model.DeptBloodServices, // blood storage and processing
			"041":  model.DeptRespiratory,
			"042":  model.DeptPhysicalTher,
			"045":  model.DeptEmergencyRoom,
			"048":  model.DeptCardiology,
			"061":  model.DeptMRI,
			"071":  model.DeptRecoveryRoom,
			"0762": model.DeptObservation,
			"076":  model.DeptObservation,
		},
		ProcedureRanges: []CodeRange{
			{Lo: 99281, Hi: 99285, Department: model.DeptEmergencyRoom},
			{Lo: 70000, Hi: 79999, Department: model.DeptRadiology},
			{Lo: 80000, Hi: 89999, Department: model.DeptLaboratory},
			{Lo: 10000, Hi: 69990, Department: model.DeptSurgery},
			{Lo: 93000, Hi: 93799, Department: model.DeptCardiology},
		},
		DepartmentKeywords: []KeywordEntry{
			{Department: model.DeptEmergencyRoom, Keywords: []string{"emergency room", "emergency dept", "triage"}},
			{Department: model.DeptCTScan, Keywords: []string{"ct scan", "computed tomography"}},
			{Department: model.DeptMRI, Keywords: []string{"mri scan", "magnetic resonance"}},
			{Department: model.DeptOperatingRoom, Keywords: []string{"operating room", "surgical suite"}},
			{Department: model.DeptAnesthesia, Keywords: []string{"anesthesia", "anesthetic"}},
			{Department: model.DeptRecoveryRoom, Keywords: []string{"recovery room", "post anesthesia", "pacu"}},
			{Department: model.DeptObservation, Keywords: []string{"observation"}},
			{Department: model.DeptRoomAndBoard, Keywords: []string{"room and board", "room board", "semi private", "private room", "ward"}},
			// No bare "blood" keyword: lab work like "complete blood
			// count" must not land here.
			{Department: model.DeptBloodServices, Keywords: []string{"transfusion", "plasma", "platelets", "packed cells", "whole blood", "blood unit"}},
			{Department: model.DeptPharmacy, Keywords: []string{"pharmacy", "medication", "intravenous", "injection", "tablet", "capsule", "solution", "drug"}},
			{Department: model.DeptLaboratory, Keywords: []string{"laboratory", "panel", "blood count", "urinalysis", "culture", "assay", "specimen"}},
			{Department: model.DeptRadiology, Keywords: []string{"x ray", "radiograph", "ultrasound", "imaging", "fluoroscopy", "mammogram"}},
			{Department: model.DeptCardiology, Keywords: []string{"electrocardiogram", "echocardiogram", "cardiac", "telemetry"}},
			{Department: model.DeptRespiratory, Keywords: []string{"oxygen", "respiratory", "ventilator", "nebulizer"}},
			{Department: model.DeptPhysicalTher, Keywords: []string{"physical therapy", "occupational therapy", "rehab"}},
			{Department: model.DeptSupplies, Keywords: []string{"supplies", "dressing", "catheter", "syringe"}},
			{Department: model.DeptSurgery, Keywords: []string{"surgery", "incision", "excision", "repair", "biopsy"}},
		},
		DetailKeywords: []DetailEntry{
			{Detail: "iv solutions", Keywords: []string{"intravenous", "saline", "dextrose", "infusion"}},
			{Detail: "chemistry", Keywords: []string{"metabolic panel", "chemistry", "electrolyte", "glucose"}},
			{Detail: "hematology", Keywords: []string{"blood count", "hemoglobin", "coagulation"}},
			{Detail: "microbiology", Keywords: []string{"culture", "gram stain", "sensitivity"}},
			{Detail: "with contrast", Keywords: []string{"with contrast"}},
			{Detail: "without contrast", Keywords: []string{"without contrast"}},
			{Detail: "semi-private", Keywords: []string{"semi private"}},
			{Detail: "private", Keywords: []string{"private room"}},
			// Roman-numeral variants are left out: the synonym table
			// rewrites "iv" to "intravenous" before detail matching runs.
			{Detail: "level 5", Keywords: []string{"level 5"}},
			{Detail: "level 4", Keywords: []string{"level 4"}},
			{Detail: "level 3", Keywords: []string{"level 3"}},
			{Detail: "level 2", Keywords: []string{"level 2"}},
			{Detail: "level 1", Keywords: []string{"level 1"}},
		},
		DailyFeeDepartments: []model.Department{
			model.DeptRoomAndBoard,
			model.DeptObservation,
			model.DeptRecoveryRoom,
		},
		EpisodeDepartments: []model.Department{
			model.DeptCTScan,
			model.DeptMRI,
			model.DeptOperatingRoom,
			model.DeptAnesthesia,
			model.DeptBloodServices,
		},
		ProgressionDepartments: []model.Department{
			model.DeptEmergencyRoom,
			model.DeptObservation,
			model.DeptRoomAndBoard,
		},
	}
}

// IsDailyFee reports whether dept accrues one charge per calendar day.
func (t *Tables) IsDailyFee(dept model.Department) bool {
	return containsDept(t.DailyFeeDepartments, dept)
}

// IsEpisode reports whether dept bills once per encounter.
func (t *Tables) IsEpisode(dept model.Department) bool {
	return containsDept(t.EpisodeDepartments, dept)
}

// IsProgression reports whether dept participates in the valid
// clinical-progression path used by exclusion checks.
func (t *Tables) IsProgression(dept model.Department) bool {
	return containsDept(t.ProgressionDepartments, dept)
}

func containsDept(list []model.Department, dept model.Department) bool {
	for _, d := range list {
		if d == dept {
			return true
		}
	}
	return false
}
