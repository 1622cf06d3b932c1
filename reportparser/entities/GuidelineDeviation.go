package entities

// GuidelineDeviation is one condition whose treatment departs from the guideline, from section 3 of a report.
type GuidelineDeviation struct {
	Condition          string `json:"condition"`
	GuidelineTreatment string `json:"guidelineTreatment"`
	DeviationReason    string `json:"deviationReason"`
}
