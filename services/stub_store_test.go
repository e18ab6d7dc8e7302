package services

import (
	"context"

	"cgm-backend/models"
)

// stubStore is the in-memory ReadingStore the service tests run against.
type stubStore struct {
	inserted   []*models.GlucoseReading
	insertErr  error
	findRows   []models.GlucoseReading
	latest     *models.GlucoseReading
	latestErr  error
	agg        ReadingAggregate
	aggErr     error
	lastFilter ReadingFilter
	lastLimit  int
}

func (s *stubStore) Insert(_ context.Context, r *models.GlucoseReading) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	r.ID = uint(len(s.inserted) + 1)
	s.inserted = append(s.inserted, r)
	return nil
}

func (s *stubStore) Find(_ context.Context, f ReadingFilter, limit int) ([]models.GlucoseReading, error) {
	s.lastFilter = f
	s.lastLimit = limit
	if limit < len(s.findRows) {
		return s.findRows[:limit], nil
	}
	return s.findRows, nil
}

func (s *stubStore) FindLatest(_ context.Context, f ReadingFilter) (*models.GlucoseReading, error) {
	s.lastFilter = f
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	if s.latest == nil {
		return nil, &NotFoundError{What: "reading"}
	}
	return s.latest, nil
}

func (s *stubStore) Aggregate(_ context.Context, f ReadingFilter) (*ReadingAggregate, error) {
	s.lastFilter = f
	if s.aggErr != nil {
		return nil, s.aggErr
	}
	agg := s.agg
	return &agg, nil
}
