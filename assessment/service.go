// Package assessment connects intake submission, report generation, storage
// and parsing. It is the only caller of the report parser: it resolves the
// report text first and passes it explicitly.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/metrics"
	"github.com/giygas/medreview-api/models"
	"github.com/giygas/medreview-api/reportparser/entities"
	"github.com/google/uuid"
)

var _ interfaces.AssessmentService = (*Service)(nil)

// ErrNoResults is returned when no report text can be found for a request
var ErrNoResults = errors.New("no results found")

// Service implements interfaces.AssessmentService
type Service struct {
	store     interfaces.ReportStore
	cache     interfaces.ReportCache
	generator interfaces.ReportGenerator
	parser    interfaces.ReportParser
	validator interfaces.IntakeValidator
}

func NewService(
	store interfaces.ReportStore,
	cache interfaces.ReportCache,
	generator interfaces.ReportGenerator,
	parser interfaces.ReportParser,
	validator interfaces.IntakeValidator,
) *Service {
	return &Service{
		store:     store,
		cache:     cache,
		generator: generator,
		parser:    parser,
		validator: validator,
	}
}

// Submit validates the form, generates a report through the webhook and
// keeps it in the store and the cache. A failing store does not fail the
// submission: the report stays reachable through the cache.
func (s *Service) Submit(ctx context.Context, kind models.Kind, form models.IntakeForm) (*models.View, error) {
	if err := s.validator.ValidateIntake(&form); err != nil {
		return nil, err
	}

	report, err := s.generator.Generate(ctx, kind, form)
	if err != nil {
		return nil, fmt.Errorf("generate %s report: %w", kind, err)
	}

	a := models.NewAssessment(kind, report)

	source := models.SourceStore
	if err := s.store.Save(ctx, &a); err != nil {
		logging.Error("Failed to store assessment, keeping it in the local cache only",
			"assessment_id", a.ID, "error", err)
		source = models.SourceCache
	}
	s.cache.Put(a)
	metrics.ReportCacheEntries.Set(float64(s.cache.Len()))

	logging.Info("Assessment generated", "assessment_id", a.ID, "kind", kind, "report_bytes", len(report))

	return s.view(a, source), nil
}

// View resolves a report by id, from the store first and the cache second
func (s *Service) View(ctx context.Context, id uuid.UUID) (*models.View, error) {
	if id == uuid.Nil {
		return s.Latest(ctx)
	}

	a, err := s.store.Get(ctx, id)
	if err == nil {
		return s.view(*a, models.SourceStore), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if cached, ok := s.cache.Get(id); ok {
		logging.Warn("Assessment served from local cache", "assessment_id", id, "store_error", err)
		return s.view(cached, models.SourceCache), nil
	}

	logging.Debug("Assessment not found", "assessment_id", id, "store_error", err)
	return nil, ErrNoResults
}

// Latest returns the most recent report generated by this process
func (s *Service) Latest(ctx context.Context) (*models.View, error) {
	a, ok := s.cache.Latest()
	if !ok {
		return nil, ErrNoResults
	}
	return s.view(a, models.SourceCache), nil
}

// Preview parses arbitrary report text without storing it
func (s *Service) Preview(raw string) (entities.Sections, interfaces.ParseReport) {
	sections, report := s.parser.ParseWithReport(raw)
	recordParse(report)
	return sections, report
}

func (s *Service) view(a models.Assessment, source models.Source) *models.View {
	sections, report := s.parser.ParseWithReport(a.ReportData)
	recordParse(report)

	return &models.View{
		ID:        a.ID,
		Kind:      a.Kind,
		CreatedAt: a.CreatedAt,
		Source:    source,
		Report:    a.ReportData,
		HTML:      RenderHTML(a.ReportData),
		Sections:  sections,
		AllEmpty:  report.AllEmpty,
	}
}

func recordParse(report interfaces.ParseReport) {
	metrics.ReportsParsedTotal.WithLabelValues(strconv.FormatBool(report.AllEmpty)).Inc()
	for _, sr := range report.Sections {
		if sr.Records > 0 {
			metrics.SectionRecordsTotal.WithLabelValues(sr.Section, sr.Strategy).Add(float64(sr.Records))
		}
		for _, skip := range sr.Skips {
			metrics.SectionSkipsTotal.WithLabelValues(sr.Section, skip.Reason).Inc()
		}
	}
}
