// Package validation checks intake forms and request identifiers before they
// reach the webhook or the store.
package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/models"
	"github.com/google/uuid"
)

// ErrInvalidIntake wraps every intake form validation failure
var ErrInvalidIntake = errors.New("invalid intake form")

const (
	maxWeightKg       = 500
	maxKidneyFunction = 250
	maxLiverEnzyme    = 10000
	maxMedicationLen  = 5000
	maxFreeTextLen    = 5000
)

// dangerousPatterns are matched case-insensitively against free text. The
// text ends up in generated reports rendered as HTML, so markup and script
// handlers are refused at the door.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"onclick=", "onmouseover=", "onfocus=", "onblur=", "<iframe", "<object",
	"<embed", "data:text/html", "expression(",
}

type IntakeValidatorImpl struct{}

func NewIntakeValidator() interfaces.IntakeValidator {
	return &IntakeValidatorImpl{}
}

// ValidateIntake checks every field of the intake form
func (v *IntakeValidatorImpl) ValidateIntake(form *models.IntakeForm) error {
	if form == nil {
		return fmt.Errorf("%w: form is nil", ErrInvalidIntake)
	}

	if !slices.Contains(models.AgeCategories, form.AgeCategory) {
		return fmt.Errorf("%w: unknown age category %q", ErrInvalidIntake, form.AgeCategory)
	}
	if !slices.Contains(models.Genders, form.Gender) {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidIntake, form.Gender)
	}

	if err := checkRange("weight", form.Weight, maxWeightKg); err != nil {
		return err
	}
	if err := checkRange("kidneyFunction", form.KidneyFunction, maxKidneyFunction); err != nil {
		return err
	}
	if err := checkRange("liverFunction.alt", form.LiverFunction.ALT, maxLiverEnzyme); err != nil {
		return err
	}
	if err := checkRange("liverFunction.ast", form.LiverFunction.AST, maxLiverEnzyme); err != nil {
		return err
	}

	selections := []struct {
		field   string
		values  []string
		allowed []string
	}{
		{"farmacogenetica", form.Farmacogenetica, models.FarmacogeneticaOptions},
		{"elektrolyten", form.Elektrolyten, models.ElektrolytenOptions},
		{"cvrm", form.CVRM, models.CVRMOptions},
		{"diabetes", form.Diabetes, models.DiabetesOptions},
	}
	for _, s := range selections {
		if err := checkSelection(s.field, s.values, s.allowed); err != nil {
			return err
		}
	}

	if err := checkText("currentMedication", form.CurrentMedication, maxMedicationLen, true); err != nil {
		return err
	}
	if err := checkText("anamnesisSummary", form.AnamnesisSummary, maxFreeTextLen, true); err != nil {
		return err
	}
	return checkText("additionalInfo", form.AdditionalInfo, maxFreeTextLen, false)
}

func checkRange(field string, value, max float64) error {
	if value < 0 || value > max {
		return fmt.Errorf("%w: %s must be between 0 and %g", ErrInvalidIntake, field, max)
	}
	return nil
}

func checkSelection(field string, values, allowed []string) error {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("%w: unknown %s option %q", ErrInvalidIntake, field, value)
		}
		if _, dup := seen[value]; dup {
			return fmt.Errorf("%w: duplicate %s option %q", ErrInvalidIntake, field, value)
		}
		seen[value] = struct{}{}
	}
	return nil
}

func checkText(field, value string, maxLen int, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidIntake, field)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidIntake, field)
	}
	if n := utf8.RuneCountInString(value); n > maxLen {
		return fmt.Errorf("%w: %s too long: %d characters, maximum %d", ErrInvalidIntake, field, n, maxLen)
	}

	lower := strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("%w: %s contains potentially dangerous content", ErrInvalidIntake, field)
		}
	}
	return nil
}

// ValidateKind accepts "public" or "hospital", case-insensitively
func (v *IntakeValidatorImpl) ValidateKind(input string) (models.Kind, error) {
	switch kind := models.Kind(strings.ToLower(strings.TrimSpace(input))); kind {
	case models.KindPublic, models.KindHospital:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown assessment kind %q: expected public or hospital", input)
	}
}

// ValidateAssessmentID parses a canonical UUID
func (v *IntakeValidatorImpl) ValidateAssessmentID(input string) (uuid.UUID, error) {
	if strings.TrimSpace(input) == "" {
		return uuid.Nil, fmt.Errorf("assessment id cannot be empty")
	}
	if len(input) != 36 {
		return uuid.Nil, fmt.Errorf("assessment id must be a 36 character UUID")
	}

	id, err := uuid.Parse(input)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid assessment id: %w", err)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("assessment id cannot be the nil UUID")
	}
	return id, nil
}
