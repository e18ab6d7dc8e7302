package services

import (
	"context"
	"time"

	"cgm-backend/config"
	"cgm-backend/models"
)

// ReadingService runs the ingestion pipeline and the read queries. The
// realtime hub and alert fan-out are strictly after-the-fact: a slow or
// failing subscriber can never delay or fail the ingestion response.
type ReadingService struct {
	store  ReadingStore
	hub    *RealtimeHub
	alerts *AlertService
	cfg    *config.AppConfig
}

func NewReadingService(store ReadingStore, hub *RealtimeHub, alerts *AlertService, cfg *config.AppConfig) *ReadingService {
	return &ReadingService{store: store, hub: hub, alerts: alerts, cfg: cfg}
}

// Ingest: validate, normalize, insert, then notify asynchronously. The
// reading is never partially persisted; a ValidationError means the store
// was never touched. An authenticated owner overrides any ownerId in the
// payload.
func (s *ReadingService) Ingest(ctx context.Context, req IngestRequest, prov Provenance, owner *uint) (*models.GlucoseReading, error) {
	draft, verr := ValidateReading(req)
	if verr != nil {
		return nil, verr
	}

	reading := NormalizeReading(draft, prov, time.Now())
	if owner != nil {
		reading.OwnerID = owner
	}
	if err := s.store.Insert(ctx, reading); err != nil {
		return nil, err
	}

	go s.notify(reading)

	return reading, nil
}

func (s *ReadingService) notify(r *models.GlucoseReading) {
	if s.hub != nil {
		s.hub.BroadcastReading(r.OwnerID, NewReadingView(r, time.Now()))
	}
	if s.alerts != nil {
		s.alerts.ReadingStored(r)
	}
}

// ListQuery has already been range-checked by the controller; Limit is
// always in [1, MaxQueryLimit] here.
type ListQuery struct {
	OwnerID *uint
	Since   *time.Time
	Until   *time.Time
	Limit   int
}

func (s *ReadingService) List(ctx context.Context, q ListQuery) ([]models.GlucoseReading, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultQueryLimit
	}
	return s.store.Find(ctx, ReadingFilter{OwnerID: q.OwnerID, Since: q.Since, Until: q.Until}, limit)
}

func (s *ReadingService) Latest(ctx context.Context, ownerID *uint) (*models.GlucoseReading, error) {
	return s.store.FindLatest(ctx, ReadingFilter{OwnerID: ownerID})
}
