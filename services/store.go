package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cgm-backend/models"

	"gorm.io/gorm"
)

// ReadingFilter is a conjunction: every non-nil member must match.
type ReadingFilter struct {
	OwnerID *uint
	Since   *time.Time
	Until   *time.Time
}

// ReadingAggregate is the raw store-side rollup; presentation rounding
// happens in the stats service.
type ReadingAggregate struct {
	Count       int64
	Avg         float64
	Min         float64
	Max         float64
	LowCount    int64
	NormalCount int64
	HighCount   int64
}

// ReadingStore is the narrow persistence contract the core depends on. Any
// conforming implementation is substitutable; tests use an in-memory stub.
type ReadingStore interface {
	// Insert assigns the ID. Uniqueness conflicts come back as
	// *DuplicateError, anything else as *StoreError.
	Insert(ctx context.Context, r *models.GlucoseReading) error
	// Find returns at most limit readings, timestamp descending, ties broken
	// by insertion order newest-first.
	Find(ctx context.Context, f ReadingFilter, limit int) ([]models.GlucoseReading, error)
	// FindLatest returns *NotFoundError when nothing matches.
	FindLatest(ctx context.Context, f ReadingFilter) (*models.GlucoseReading, error)
	// Aggregate scans the full matching set regardless of any limit. An
	// empty set yields an all-zero aggregate, not an error.
	Aggregate(ctx context.Context, f ReadingFilter) (*ReadingAggregate, error)
}

type GormReadingStore struct {
	db *gorm.DB
}

func NewGormReadingStore(db *gorm.DB) *GormReadingStore {
	return &GormReadingStore{db: db}
}

func (s *GormReadingStore) Insert(ctx context.Context, r *models.GlucoseReading) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return translateStoreError("insert", err)
	}
	return nil
}

func (s *GormReadingStore) Find(ctx context.Context, f ReadingFilter, limit int) ([]models.GlucoseReading, error) {
	var rows []models.GlucoseReading
	err := s.filtered(ctx, f).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateStoreError("find", err)
	}
	return rows, nil
}

func (s *GormReadingStore) FindLatest(ctx context.Context, f ReadingFilter) (*models.GlucoseReading, error) {
	var row models.GlucoseReading
	err := s.filtered(ctx, f).
		Order("timestamp DESC, id DESC").
		First(&row).Error
	if err != nil {
		return nil, translateStoreError("find latest", err)
	}
	return &row, nil
}

func (s *GormReadingStore) Aggregate(ctx context.Context, f ReadingFilter) (*ReadingAggregate, error) {
	var agg ReadingAggregate
	err := s.filtered(ctx, f).
		Select(fmt.Sprintf(`COUNT(*) AS count,
			COALESCE(AVG(value), 0) AS avg,
			COALESCE(MIN(value), 0) AS min,
			COALESCE(MAX(value), 0) AS max,
			COUNT(*) FILTER (WHERE value < %[1]v) AS low_count,
			COUNT(*) FILTER (WHERE value >= %[1]v AND value <= %[2]v) AS normal_count,
			COUNT(*) FILTER (WHERE value > %[2]v) AS high_count`,
			LowThreshold, HighThreshold)).
		Scan(&agg).Error
	if err != nil {
		return nil, translateStoreError("aggregate", err)
	}
	return &agg, nil
}

func (s *GormReadingStore) filtered(ctx context.Context, f ReadingFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.GlucoseReading{})
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.Since != nil {
		q = q.Where("timestamp >= ?", *f.Since)
	}
	if f.Until != nil {
		q = q.Where("timestamp <= ?", *f.Until)
	}
	return q
}

// translateStoreError keeps gorm error values out of the core and its tests.
func translateStoreError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{What: "reading"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &DuplicateError{Detail: "an identical sample was already stored"}
	default:
		return &StoreError{Op: op, Err: err}
	}
}
