package entities

// SideEffectAnalysis is one suspected side effect and its follow-up, from section 4 of a report.
type SideEffectAnalysis struct {
	SideEffect            string `json:"sideEffect"`
	ImplicatedMedications string `json:"implicatedMedications"`
	OnsetTimeline         string `json:"onsetTimeline"`
	AlternativeCauses     string `json:"alternativeCauses"`
	MonitoringPlan        string `json:"monitoringPlan"`
	Citation              string `json:"citation"`
}
