package entities

// TreatmentPlanItem is one proposed intervention from section 2 of a report.
type TreatmentPlanItem struct {
	Ordinal        string `json:"ordinal"`
	Intervention   string `json:"intervention"`
	ProsCons       string `json:"prosCons"`
	EvaluationPlan string `json:"evaluationPlan"`
	Citation       string `json:"citation"`
}
