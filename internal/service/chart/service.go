package chart

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	chartcore "github.com/dentalops/dental-admin-api/internal/chart"
	"github.com/dentalops/dental-admin-api/internal/repository"
	"github.com/dentalops/dental-admin-api/pkg/metrics"
)

// DentalChart is the full aggregated chart for one patient, the shape
// the view layer renders from.
type DentalChart struct {
	PatientID uuid.UUID                `json:"patient_id"`
	Teeth     []chartcore.ToothRecord  `json:"teeth"`
	Visits    []chartcore.Visit        `json:"visits"`
	Summaries []chartcore.ToothSummary `json:"summaries"`
	Stats     chartcore.Statistics     `json:"stats"`
}

type ChartService interface {
	GetChart(ctx context.Context, patientID uuid.UUID) (*DentalChart, error)
	GetVisits(ctx context.Context, patientID uuid.UUID) ([]chartcore.Visit, error)
	GetSummaries(ctx context.Context, patientID uuid.UUID) ([]chartcore.ToothSummary, error)
	GetStats(ctx context.Context, patientID uuid.UUID) (*chartcore.Statistics, error)
	Invalidate(patientID uuid.UUID)
}

type Config struct {
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration
}

type Service struct {
	observationRepo repository.ObservationRepository
	procedureRepo   repository.ProcedureRepository
	cache           *gocache.Cache
	metrics         *metrics.Metrics
}

func NewService(observationRepo repository.ObservationRepository, procedureRepo repository.ProcedureRepository, cfg Config, m *metrics.Metrics) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if cfg.CacheCleanupInterval <= 0 {
		cfg.CacheCleanupInterval = 5 * time.Minute
	}
	return &Service{
		observationRepo: observationRepo,
		procedureRepo:   procedureRepo,
		cache:           gocache.New(cfg.CacheTTL, cfg.CacheCleanupInterval),
		metrics:         m,
	}
}

func (s *Service) GetChart(ctx context.Context, patientID uuid.UUID) (*DentalChart, error) {
	key := cacheKey(patientID)
	if cached, ok := s.cache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.ChartCacheHits.Inc()
		}
		return cached.(*DentalChart), nil
	}
	if s.metrics != nil {
		s.metrics.ChartCacheMisses.Inc()
	}

	teeth, skipped, err := s.loadToothRecords(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warn().
			Str("patient_id", patientID.String()).
			Int("skipped", skipped).
			Msg("skipped chart records missing identity or timestamp")
	}

	var timer *prometheus.Timer
	if s.metrics != nil {
		timer = prometheus.NewTimer(s.metrics.ChartAggregationTime)
		s.metrics.ChartAggregations.WithLabelValues("full").Inc()
	}

	visits := chartcore.AggregateVisits(teeth)
	summaries := chartcore.AggregateToothSummaries(teeth)
	stats := chartcore.Stats(visits, summaries)

	if timer != nil {
		timer.ObserveDuration()
	}

	chart := &DentalChart{
		PatientID: patientID,
		Teeth:     teeth,
		Visits:    visits,
		Summaries: summaries,
		Stats:     stats,
	}
	s.cache.SetDefault(key, chart)
	return chart, nil
}

func (s *Service) GetVisits(ctx context.Context, patientID uuid.UUID) ([]chartcore.Visit, error) {
	chart, err := s.GetChart(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return chart.Visits, nil
}

func (s *Service) GetSummaries(ctx context.Context, patientID uuid.UUID) ([]chartcore.ToothSummary, error) {
	chart, err := s.GetChart(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return chart.Summaries, nil
}

func (s *Service) GetStats(ctx context.Context, patientID uuid.UUID) (*chartcore.Statistics, error) {
	chart, err := s.GetChart(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &chart.Stats, nil
}

// Invalidate drops the cached chart after an observation or procedure
// mutation.
func (s *Service) Invalidate(patientID uuid.UUID) {
	s.cache.Delete(cacheKey(patientID))
}

// loadToothRecords composes the flat observation and procedure lists
// into per-tooth chart entries. A multi-tooth procedure is attached to
// every tooth it spans; the aggregators deduplicate downstream. The
// count of records without usable identity is returned for logging.
func (s *Service) loadToothRecords(ctx context.Context, patientID uuid.UUID) ([]chartcore.ToothRecord, int, error) {
	observations, err := s.observationRepo.ListByPatient(ctx, patientID, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load observations: %w", err)
	}
	procedures, err := s.procedureRepo.ListByPatient(ctx, patientID, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load procedures: %w", err)
	}

	observationIDs := make([]uuid.UUID, 0, len(observations))
	for _, obs := range observations {
		observationIDs = append(observationIDs, obs.ID)
	}
	links, err := s.observationRepo.ListProcedureLinks(ctx, observationIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load observation procedures: %w", err)
	}

	byTooth := make(map[string]*chartcore.ToothRecord)
	order := make([]string, 0)
	record := func(tooth string) *chartcore.ToothRecord {
		if r, ok := byTooth[tooth]; ok {
			return r
		}
		r := &chartcore.ToothRecord{ToothNumber: tooth}
		byTooth[tooth] = r
		order = append(order, tooth)
		return r
	}

	skipped := 0
	for _, obs := range observations {
		if obs.ID == uuid.Nil || obs.CreatedAt.IsZero() {
			skipped++
			continue
		}
		o := *obs
		o.Procedures = links[obs.ID]
		o.NormalizeProcedures()
		r := record(o.ToothNumber)
		r.Observations = append(r.Observations, o)
		// Linked procedures count as treatment on this tooth too, so
		// status resolution sees them even when they never appear in
		// the flat procedure list. The aggregators deduplicate by ID.
		r.Procedures = append(r.Procedures, o.Procedures...)
	}

	for _, proc := range procedures {
		if proc.ID == uuid.Nil || proc.CreatedAt.IsZero() {
			skipped++
			continue
		}
		for _, tooth := range proc.TeethList() {
			r := record(tooth)
			r.Procedures = append(r.Procedures, *proc)
		}
	}

	sort.Strings(order)
	teeth := make([]chartcore.ToothRecord, 0, len(order))
	for _, tooth := range order {
		teeth = append(teeth, *byTooth[tooth])
	}
	return teeth, skipped, nil
}

func cacheKey(patientID uuid.UUID) string {
	return "chart:" + patientID.String()
}
