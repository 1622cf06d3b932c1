package reportparser

import "regexp"

// Section identifies one of the four structured parts of a report.
type Section int

const (
	SectionFindings Section = iota
	SectionTreatmentPlan
	SectionGuidelineDeviations
	SectionSideEffects

	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionFindings:
		return "findings"
	case SectionTreatmentPlan:
		return "treatment_plan"
	case SectionGuidelineDeviations:
		return "guideline_deviations"
	case SectionSideEffects:
		return "side_effects"
	default:
		return "unknown"
	}
}

// AllSections returns every section in document order.
func AllSections() []Section {
	return []Section{SectionFindings, SectionTreatmentPlan, SectionGuidelineDeviations, SectionSideEffects}
}

// Every heading follows the same grammar, anchored at the start of a line:
//
//	[###] [** or __] [n.] [** or __] keyword
//
// The numeral is optional for the findings heading only.
var anchorPatterns = [sectionCount]*regexp.Regexp{
	SectionFindings:            headingPattern(`1`, true, `FTP(?:['’]?s)?\b`),
	SectionTreatmentPlan:       headingPattern(`2`, false, `(?:Behandelplan|Treatment[ \t]+plan)`),
	SectionGuidelineDeviations: headingPattern(`3`, false, `(?:Aandoening|Condition)`),
	SectionSideEffects:         headingPattern(`4`, false, `(?:Bijwerking(?:en)?(?:analyse)?|Side[ \t-]*effects?)`),
}

func headingPattern(numeral string, optional bool, keyword string) *regexp.Regexp {
	num := `(?:` + numeral + `[ \t]*\.[*_ \t]*)`
	if optional {
		num += `?`
	}
	return regexp.MustCompile(`(?im)^[ \t]*(?:#{1,6})?[*_ \t]*` + num + keyword)
}

// boundary is the [start, end) byte range of one section in the report.
type boundary struct {
	section Section
	found   bool
	start   int
	end     int
}

// locateSections finds each section's anchor. A section ends where the
// nearest later anchor starts, or at the end of the text when there is none.
func locateSections(text string) [sectionCount]boundary {
	var bounds [sectionCount]boundary

	for _, s := range AllSections() {
		bounds[s].section = s
		if loc := anchorPatterns[s].FindStringIndex(text); loc != nil {
			bounds[s].found = true
			bounds[s].start = loc[0]
		}
	}

	for i := range bounds {
		if !bounds[i].found {
			continue
		}
		end := len(text)
		for j := range bounds {
			if bounds[j].found && bounds[j].start > bounds[i].start && bounds[j].start < end {
				end = bounds[j].start
			}
		}
		bounds[i].end = end
	}

	return bounds
}

func (b boundary) slice(text string) string {
	if !b.found {
		return ""
	}
	return text[b.start:b.end]
}
