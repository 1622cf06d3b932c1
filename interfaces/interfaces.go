// Package interfaces defines core abstractions for the medication review API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/medreview-api/models"
	"github.com/giygas/medreview-api/reportparser/entities"
	"github.com/google/uuid"
)

// ParseSkip describes a row the parser dropped without failing
type ParseSkip struct {
	Line   int    `json:"line,omitempty"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// SectionReport summarizes how one report section was parsed
type SectionReport struct {
	Section  string      `json:"section"`
	Found    bool        `json:"found"`
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Strategy string      `json:"strategy,omitempty"`
	Records  int         `json:"records"`
	Skips    []ParseSkip `json:"skips,omitempty"`
}

// ParseReport provides the diagnostics of a single parse call
type ParseReport struct {
	Sections []SectionReport `json:"sections"`
	AllEmpty bool            `json:"allEmpty"`
}

// ReportParser turns generated report text into structured sections.
// Implementations must be pure and safe for concurrent use.
type ReportParser interface {
	Parse(raw string) entities.Sections
	ParseWithReport(raw string) (entities.Sections, ParseReport)
}

// ReportStore defines the contract for persisted assessments.
type ReportStore interface {
	Save(ctx context.Context, assessment *models.Assessment) error
	Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close()
}

// ReportCache defines the contract for the local report cache that backs up
// the store. It provides thread-safe access with copy-on-write updates.
type ReportCache interface {
	Put(assessment models.Assessment)
	Get(id uuid.UUID) (models.Assessment, bool)
	Latest() (models.Assessment, bool)
	EvictExpired() int
	Len() int
	LastStored() time.Time
}

// ReportGenerator sends an intake form to the external automation webhook
// and returns the generated report text.
type ReportGenerator interface {
	Generate(ctx context.Context, kind models.Kind, form models.IntakeForm) (string, error)
	State() string
}

// AssessmentService is the caller of the parser: it produces and resolves
// report text and hands it to the parser explicitly.
type AssessmentService interface {
	Submit(ctx context.Context, kind models.Kind, form models.IntakeForm) (*models.View, error)
	View(ctx context.Context, id uuid.UUID) (*models.View, error)
	Latest(ctx context.Context) (*models.View, error)
	Preview(raw string) (entities.Sections, ParseReport)
}

// Scheduler defines the contract for job scheduling and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	SubmitAssessment(w http.ResponseWriter, r *http.Request)
	GetAssessment(w http.ResponseWriter, r *http.Request)
	GetLatestAssessment(w http.ResponseWriter, r *http.Request)
	GetAssessmentHTML(w http.ResponseWriter, r *http.Request)
	ParseReport(w http.ResponseWriter, r *http.Request)
	IntakeOptions(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (status string, details map[string]any, httpStatus int)
}

// IntakeValidator defines the contract for request validation.
type IntakeValidator interface {
	ValidateIntake(form *models.IntakeForm) error
	ValidateKind(input string) (models.Kind, error)
	ValidateAssessmentID(input string) (uuid.UUID, error)
}
