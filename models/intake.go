// Package models holds the request and persistence types shared by the
// medication review API: the clinical intake form, the stored assessment and
// the assembled report view.
package models

// Kind selects which automation webhook generates the report.
type Kind string

const (
	KindPublic   Kind = "public"   // community pharmacy
	KindHospital Kind = "hospital" // hospital pharmacy
)

type LiverFunction struct {
	ALT float64 `json:"alt"`
	AST float64 `json:"ast"`
}

// IntakeForm is the clinical intake a pharmacist submits for review.
// It is forwarded as-is to the automation webhook.
type IntakeForm struct {
	AgeCategory       string        `json:"ageCategory"`
	Weight            float64       `json:"weight"`
	KidneyFunction    float64       `json:"kidneyFunction"`
	Gender            string        `json:"gender"`
	Farmacogenetica   []string      `json:"farmacogenetica"`
	LiverFunction     LiverFunction `json:"liverFunction"`
	Elektrolyten      []string      `json:"elektrolyten"`
	CVRM              []string      `json:"cvrm"`
	Diabetes          []string      `json:"diabetes"`
	CurrentMedication string        `json:"currentMedication"`
	AnamnesisSummary  string        `json:"anamnesisSummary"`
	AdditionalInfo    string        `json:"additionalInfo"`
}

var AgeCategories = []string{"0-18", "18-60", "60-70", "70+"}

var Genders = []string{"Male", "Female"}

var FarmacogeneticaOptions = []string{
	"CYP2D6 PM",
	"CYP2D6 IM",
	"CYP2D6 UM",
	"CYP3A4 PM",
	"CYP3A4 IM",
	"CYP3A4 UM",
	"CYP2C19 PM",
	"CYP2C19 IM",
	"CYP2C19 UM",
	"UGT1A1 PM",
	"UGT1A1 IM",
	"UGT1A1 UM",
	"DPYD AS 0,5",
	"DPYD AS 1,0",
	"DPYD AS 1,5",
	"DPYD AS 2,0",
}

var ElektrolytenOptions = []string{
	"Hyponatriëmie",
	"Hypernatriëmie",
	"Hypokaliëmie",
	"Hyperkaliëmie",
	"Hypocalciëmie",
	"Hypercalciëmie",
	"Hypomagnesiëmie",
	"Hypermagnesiëmie",
	"Hypothyreoïdie",
	"Hyperthyreoïdie",
}

var CVRMOptions = []string{
	"Hypertensie",
	"Hypotensie",
	"Verhoogd LDL‑cholesterol",
	"Laag LDL‑cholesterol",
	"Verhoogd HDL‑cholesterol",
	"Laag HDL‑cholesterol",
	"Verhoogd totaal cholesterol",
	"Hypertriglyceridemie",
	"Diabetes mellitus type 1",
	"Diabetes mellitus type 2",
	"Hartfalen",
	"Atriumfibrilleren",
	"Coronaire hartziekte / status post‑MI",
	"Perifeer arterieel vaatlijden",
	"Cerebrovasculaire ziekte (beroerte / TIA)",
	"Metabool syndroom",
}

var DiabetesOptions = []string{
	"Verhoogd HbA1C",
	"Verlaagd HbA1C",
	"Verhoogd nuchtere glucose",
	"Verlaagd nuchtere glucose",
}

// IntakeOptions groups the selectable values of the intake form.
type IntakeOptions struct {
	AgeCategories   []string `json:"ageCategories"`
	Genders         []string `json:"genders"`
	Farmacogenetica []string `json:"farmacogenetica"`
	Elektrolyten    []string `json:"elektrolyten"`
	CVRM            []string `json:"cvrm"`
	Diabetes        []string `json:"diabetes"`
}

// Options returns the selectable values of the intake form.
func Options() IntakeOptions {
	return IntakeOptions{
		AgeCategories:   AgeCategories,
		Genders:         Genders,
		Farmacogenetica: FarmacogeneticaOptions,
		Elektrolyten:    ElektrolytenOptions,
		CVRM:            CVRMOptions,
		Diabetes:        DiabetesOptions,
	}
}
