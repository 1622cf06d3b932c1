package models

import (
	"time"

	"github.com/giygas/medreview-api/reportparser/entities"
	"github.com/google/uuid"
)

// Assessment is one generated report as persisted by the report store.
type Assessment struct {
	ID         uuid.UUID `json:"id"`
	Kind       Kind      `json:"kind"`
	ReportData string    `json:"reportData"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewAssessment creates an assessment with a fresh identifier.
func NewAssessment(kind Kind, report string) Assessment {
	return Assessment{
		ID:         uuid.New(),
		Kind:       kind,
		ReportData: report,
		CreatedAt:  time.Now().UTC(),
	}
}

// Source tells where a report view got its text from.
type Source string

const (
	SourceStore   Source = "store"
	SourceCache   Source = "cache"
	SourceRequest Source = "request"
)

// View is a report ready for display: the raw text, its markdown rendering
// and the structured sections. When AllEmpty is true the caller shows the
// raw text or HTML instead of tables.
type View struct {
	ID        uuid.UUID         `json:"id"`
	Kind      Kind              `json:"kind"`
	CreatedAt time.Time         `json:"createdAt"`
	Source    Source            `json:"source"`
	Report    string            `json:"report"`
	HTML      string            `json:"html"`
	Sections  entities.Sections `json:"sections"`
	AllEmpty  bool              `json:"allEmpty"`
}
