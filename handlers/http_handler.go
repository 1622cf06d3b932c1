// Package handlers implements the HTTP API of the medication review service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/giygas/medreview-api/assessment"
	"github.com/giygas/medreview-api/automation"
	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/models"
	"github.com/giygas/medreview-api/reportparser/entities"
	"github.com/giygas/medreview-api/validation"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	service       interfaces.AssessmentService
	validator     interfaces.IntakeValidator
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	service interfaces.AssessmentService,
	validator interfaces.IntakeValidator,
	healthChecker interfaces.HealthChecker,
) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		service:       service,
		validator:     validator,
		healthChecker: healthChecker,
	}
}

// ParseResponse is the body of POST /v1/reports/parse
type ParseResponse struct {
	entities.Sections
	AllEmpty    bool                       `json:"allEmpty"`
	Diagnostics []interfaces.SectionReport `json:"diagnostics"`
}

// SubmitAssessment handles POST /v1/assessments/{kind}
func (h *HTTPHandlerImpl) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	kind, err := h.validator.ValidateKind(chi.URLParam(r, "kind"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var form models.IntakeForm
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&form); err != nil {
		logging.Warn("Invalid intake body", "kind", kind, "error", err)
		RespondWithError(w, http.StatusBadRequest, "Request body must be a JSON intake form")
		return
	}

	view, err := h.service.Submit(r.Context(), kind, form)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, view)
}

// GetAssessment handles GET /v1/assessments/{id}
func (h *HTTPHandlerImpl) GetAssessment(w http.ResponseWriter, r *http.Request) {
	view, ok := h.lookup(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, view)
}

// GetLatestAssessment handles GET /v1/assessments/latest
func (h *HTTPHandlerImpl) GetLatestAssessment(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Latest(r.Context())
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, view)
}

var reportPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="utf-8">
<title>Medicatiebeoordeling</title>
</head>
<body>
<article class="report">
{{.}}
</article>
</body>
</html>
`))

// GetAssessmentHTML handles GET /v1/assessments/{id}/report.html and serves
// the rendered markdown, the display used when no tables could be parsed.
func (h *HTTPHandlerImpl) GetAssessmentHTML(w http.ResponseWriter, r *http.Request) {
	view, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "private, max-age=300")
	// The fragment comes from goldmark with raw HTML disabled
	if err := reportPage.Execute(w, template.HTML(view.HTML)); err != nil {
		logging.Error("Failed to render report page", "assessment_id", view.ID, "error", err)
	}
}

// ParseReport handles POST /v1/reports/parse. The body is either the report
// as text/plain or a JSON object {"report": "..."}.
func (h *HTTPHandlerImpl) ParseReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	raw := string(body)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req struct {
			Report *string `json:"report"`
		}
		if err := json.Unmarshal(body, &req); err != nil || req.Report == nil {
			RespondWithError(w, http.StatusBadRequest, `JSON body must contain a "report" string`)
			return
		}
		raw = *req.Report
	}

	sections, report := h.service.Preview(raw)
	RespondWithJSON(w, http.StatusOK, ParseResponse{
		Sections:    sections,
		AllEmpty:    report.AllEmpty,
		Diagnostics: report.Sections,
	})
}

// IntakeOptions handles GET /v1/intake/options
func (h *HTTPHandlerImpl) IntakeOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	RespondWithJSON(w, http.StatusOK, models.Options())
}

// HealthCheck handles GET /health
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.healthChecker.HealthCheck(r.Context())

	RespondWithJSON(w, httpStatus, map[string]any{
		"status": status,
		"data":   data,
	})
}

func (h *HTTPHandlerImpl) lookup(w http.ResponseWriter, r *http.Request) (*models.View, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := h.validator.ValidateAssessmentID(idParam)
	if err != nil {
		logging.Warn("Unusual user input", "id", idParam)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	view, err := h.service.View(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, err)
		return nil, false
	}
	return view, true
}

// respondWithServiceError maps service errors onto status codes
func (h *HTTPHandlerImpl) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidIntake):
		RespondWithError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), validation.ErrInvalidIntake.Error()+": "))
	case errors.Is(err, assessment.ErrNoResults):
		RespondWithError(w, http.StatusNotFound, "No results found")
	case errors.Is(err, automation.ErrUnavailable):
		RespondWithError(w, http.StatusServiceUnavailable, "Report generation is temporarily unavailable, try again later")
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		RespondWithError(w, http.StatusGatewayTimeout, "Report generation timed out")
	case errors.Is(err, context.Canceled):
		RespondWithError(w, 499, "Request cancelled")
	default:
		logging.Error("Request failed", "error", err)
		RespondWithError(w, http.StatusBadGateway, "Report generation failed")
	}
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
