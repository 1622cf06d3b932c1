package reportparser

import (
	"strings"
	"testing"
)

func TestAnchorPatterns(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		heading string
		want    bool
	}{
		{"markdown findings", SectionFindings, "### 1. FTP's", true},
		{"findings without numeral", SectionFindings, "## FTPs", true},
		{"findings curly apostrophe", SectionFindings, "1. FTP’s", true},
		{"findings bold", SectionFindings, "**1. FTP's**", true},
		{"findings lowercase", SectionFindings, "1. ftp's en aanbevelingen", true},
		{"findings inside prose", SectionFindings, "De FTP's staan hieronder", false},
		{"findings word prefix", SectionFindings, "FTPserver", false},
		{"treatment plan dutch", SectionTreatmentPlan, "### 2. Behandelplan", true},
		{"treatment plan english", SectionTreatmentPlan, "2. Treatment Plan", true},
		{"treatment plan bold numeral", SectionTreatmentPlan, "**2.** Behandelplan", true},
		{"treatment plan needs numeral", SectionTreatmentPlan, "Behandelplan", false},
		{"treatment plan wrong numeral", SectionTreatmentPlan, "3. Behandelplan", false},
		{"guideline dutch", SectionGuidelineDeviations, "### 3. Aandoening en richtlijn", true},
		{"guideline english", SectionGuidelineDeviations, "3. Condition vs guideline", true},
		{"side effects dutch", SectionSideEffects, "### 4. Bijwerkingenanalyse", true},
		{"side effects singular", SectionSideEffects, "4. Bijwerking", true},
		{"side effects english", SectionSideEffects, "#### 4. Side-effects", true},
		{"side effects spaced", SectionSideEffects, "4. Side effects", true},
		{"side effects indented", SectionSideEffects, "   4. Bijwerkingen", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := anchorPatterns[tt.section].MatchString(tt.heading)
			if got != tt.want {
				t.Errorf("%s anchor on %q = %v, want %v", tt.section, tt.heading, got, tt.want)
			}
		})
	}
}

func TestLocateSectionsOrdersBoundaries(t *testing.T) {
	text := strings.Join([]string{
		"# Medicatiebeoordeling",
		"### 1. FTP's",
		"findings body",
		"### 2. Behandelplan",
		"plan body",
		"### 3. Aandoening",
		"guideline body",
		"### 4. Bijwerkingen",
		"side effect body",
	}, "\n")

	bounds := locateSections(text)

	for _, s := range AllSections() {
		if !bounds[s].found {
			t.Fatalf("%s not found", s)
		}
	}

	wantPrefix := map[Section]string{
		SectionFindings:            "### 1. FTP's\nfindings body\n",
		SectionTreatmentPlan:       "### 2. Behandelplan\nplan body\n",
		SectionGuidelineDeviations: "### 3. Aandoening\nguideline body\n",
		SectionSideEffects:         "### 4. Bijwerkingen\nside effect body",
	}
	for s, want := range wantPrefix {
		if got := bounds[s].slice(text); got != want {
			t.Errorf("%s slice = %q, want %q", s, got, want)
		}
	}
}

func TestLocateSectionsMissingAnchors(t *testing.T) {
	text := "### 1. FTP's\nbody\n### 3. Aandoening\nlast section runs to the end"

	bounds := locateSections(text)

	if bounds[SectionTreatmentPlan].found || bounds[SectionSideEffects].found {
		t.Error("sections without anchors must not be found")
	}
	if got := bounds[SectionTreatmentPlan].slice(text); got != "" {
		t.Errorf("missing section slice = %q, want empty", got)
	}
	if bounds[SectionFindings].end != bounds[SectionGuidelineDeviations].start {
		t.Error("findings should end where the next found anchor starts")
	}
	if bounds[SectionGuidelineDeviations].end != len(text) {
		t.Errorf("last section end = %d, want %d", bounds[SectionGuidelineDeviations].end, len(text))
	}
}

func TestLocateSectionsOutOfOrder(t *testing.T) {
	text := "### 2. Behandelplan\nplan\n### 1. FTP's\nfindings"

	bounds := locateSections(text)

	if got := bounds[SectionTreatmentPlan].slice(text); got != "### 2. Behandelplan\nplan\n" {
		t.Errorf("treatment plan slice = %q", got)
	}
	if got := bounds[SectionFindings].slice(text); got != "### 1. FTP's\nfindings" {
		t.Errorf("findings slice = %q", got)
	}
}

func TestSectionString(t *testing.T) {
	want := []string{"findings", "treatment_plan", "guideline_deviations", "side_effects"}
	for i, s := range AllSections() {
		if s.String() != want[i] {
			t.Errorf("Section(%d).String() = %q, want %q", s, s.String(), want[i])
		}
	}
	if Section(99).String() != "unknown" {
		t.Error("out of range section should be unknown")
	}
}
