package entities

// Finding is one identified pharmacotherapy problem (FTP) from section 1 of a report.
type Finding struct {
	Ordinal              string `json:"ordinal"`
	Description          string `json:"description"`
	CurrentMedicationRef string `json:"currentMedicationRef"`
	SupportingData       string `json:"supportingData"`
	RecommendedAction    string `json:"recommendedAction"`
	Citation             string `json:"citation"`
}
