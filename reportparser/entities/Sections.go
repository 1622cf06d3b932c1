package entities

// Sections holds the four record families recovered from one report.
// The slices are never nil so they always serialize as JSON arrays.
type Sections struct {
	Findings            []Finding            `json:"findings"`
	TreatmentPlan       []TreatmentPlanItem  `json:"treatmentPlan"`
	GuidelineDeviations []GuidelineDeviation `json:"guidelineDeviations"`
	SideEffects         []SideEffectAnalysis `json:"sideEffects"`
}

// NewSections returns Sections with all four lists empty.
func NewSections() Sections {
	return Sections{
		Findings:            []Finding{},
		TreatmentPlan:       []TreatmentPlanItem{},
		GuidelineDeviations: []GuidelineDeviation{},
		SideEffects:         []SideEffectAnalysis{},
	}
}

// AllEmpty reports whether no structured data was recovered, in which case
// the report should be displayed as raw text instead of tables.
func (s Sections) AllEmpty() bool {
	return len(s.Findings) == 0 &&
		len(s.TreatmentPlan) == 0 &&
		len(s.GuidelineDeviations) == 0 &&
		len(s.SideEffects) == 0
}

// Count returns the total number of records across all sections.
func (s Sections) Count() int {
	return len(s.Findings) + len(s.TreatmentPlan) + len(s.GuidelineDeviations) + len(s.SideEffects)
}
