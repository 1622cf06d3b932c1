package reportparser

import (
	"fmt"
	"strings"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/reportparser/entities"
)

// Compile-time check to ensure ReportParser implements ReportParser interface
var _ interfaces.ReportParser = (*ReportParser)(nil)

// ReportParser implements interfaces.ReportParser. It holds no state and is
// safe for concurrent use.
type ReportParser struct{}

// NewReportParser creates a new ReportParser instance
func NewReportParser() *ReportParser {
	return &ReportParser{}
}

// Parse implements the ReportParser interface
func (p *ReportParser) Parse(raw string) entities.Sections {
	return Parse(raw)
}

// ParseWithReport implements the ReportParser interface
func (p *ReportParser) ParseWithReport(raw string) (entities.Sections, interfaces.ParseReport) {
	return ParseWithReport(raw)
}

// Parse extracts the structured sections of a generated medication review.
// It never fails: sections that cannot be recovered are returned empty.
func Parse(raw string) entities.Sections {
	sections, _ := ParseWithReport(raw)
	return sections
}

// ParseWithReport is Parse plus per-section diagnostics: where each section
// was found, which strategy read it and which rows were skipped.
func ParseWithReport(raw string) (entities.Sections, interfaces.ParseReport) {
	sections := entities.NewSections()
	report := interfaces.ParseReport{}

	if strings.TrimSpace(raw) == "" {
		logging.Debug("No report content to parse")
		report.AllEmpty = true
		return sections, report
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	bounds := locateSections(text)

	sections.Findings = runSection(findingExtractor, text, bounds[SectionFindings], &report)
	sections.TreatmentPlan = runSection(treatmentPlanExtractor, text, bounds[SectionTreatmentPlan], &report)
	sections.GuidelineDeviations = runSection(guidelineDeviationExtractor, text, bounds[SectionGuidelineDeviations], &report)
	sections.SideEffects = runSection(sideEffectExtractor, text, bounds[SectionSideEffects], &report)

	report.AllEmpty = sections.AllEmpty()

	logging.Debug("Report parsing complete",
		"findings", len(sections.Findings),
		"treatment_plan", len(sections.TreatmentPlan),
		"guideline_deviations", len(sections.GuidelineDeviations),
		"side_effects", len(sections.SideEffects),
	)

	return sections, report
}

// runSection extracts one section. A panic inside a strategy only empties
// that section; the remaining sections are still parsed.
func runSection[T any](ex extractor[T], text string, b boundary, report *interfaces.ParseReport) (records []T) {
	records = []T{}
	sr := interfaces.SectionReport{
		Section: ex.section.String(),
		Found:   b.found,
		Start:   b.start,
		End:     b.end,
	}
	defer func() {
		report.Sections = append(report.Sections, sr)
	}()

	if !b.found {
		logging.Debug("Section anchor not found", "section", sr.Section)
		return records
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Warn("Section extraction failed", "section", sr.Section, "panic", r)
			records = []T{}
			sr.Records = 0
			sr.Skips = append(sr.Skips, interfaces.ParseSkip{
				Reason: string(SkipPanic),
				Text:   fmt.Sprint(r),
			})
		}
	}()

	ext, strategy := ex.extract(b.slice(text))
	sr.Strategy = strategy
	for _, s := range ext.Skips {
		sr.Skips = append(sr.Skips, interfaces.ParseSkip{Line: s.Line, Text: s.Text, Reason: string(s.Reason)})
	}
	if len(ext.Records) > 0 {
		records = ext.Records
	}
	sr.Records = len(records)

	logging.Debug("Section parsed",
		"section", sr.Section,
		"strategy", strategy,
		"records", sr.Records,
		"skipped", len(sr.Skips),
	)

	return records
}
