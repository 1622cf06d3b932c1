package reportparser

import "github.com/giygas/medreview-api/reportparser/entities"

var findingSchema = schema[entities.Finding]{
	minColumns:  5,
	columns:     6,
	numbered:    true,
	splitAction: true,
	build: func(c []string) entities.Finding {
		return entities.Finding{
			Ordinal:              c[0],
			Description:          c[1],
			CurrentMedicationRef: c[2],
			SupportingData:       c[3],
			RecommendedAction:    c[4],
			Citation:             c[5],
		}
	},
}

var treatmentPlanSchema = schema[entities.TreatmentPlanItem]{
	minColumns: 4,
	columns:    5,
	numbered:   true,
	build: func(c []string) entities.TreatmentPlanItem {
		return entities.TreatmentPlanItem{
			Ordinal:        c[0],
			Intervention:   c[1],
			ProsCons:       c[2],
			EvaluationPlan: c[3],
			Citation:       c[4],
		}
	},
}

var guidelineDeviationSchema = schema[entities.GuidelineDeviation]{
	minColumns: 3,
	columns:    3,
	build: func(c []string) entities.GuidelineDeviation {
		return entities.GuidelineDeviation{
			Condition:          c[0],
			GuidelineTreatment: c[1],
			DeviationReason:    c[2],
		}
	},
}

var sideEffectSchema = schema[entities.SideEffectAnalysis]{
	minColumns: 5,
	columns:    6,
	build: func(c []string) entities.SideEffectAnalysis {
		return entities.SideEffectAnalysis{
			SideEffect:            c[0],
			ImplicatedMedications: c[1],
			OnsetTimeline:         c[2],
			AlternativeCauses:     c[3],
			MonitoringPlan:        c[4],
			Citation:              c[5],
		}
	},
}

var (
	findingExtractor            = newExtractor(SectionFindings, findingSchema)
	treatmentPlanExtractor      = newExtractor(SectionTreatmentPlan, treatmentPlanSchema)
	guidelineDeviationExtractor = newExtractor(SectionGuidelineDeviations, guidelineDeviationSchema)
	sideEffectExtractor         = newExtractor(SectionSideEffects, sideEffectSchema)
)
