package services

import (
	"context"
	"math"
	"time"
)

type RangeBucket struct {
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

type StatsSummary struct {
	Count   int64       `json:"count"`
	Average float64     `json:"average"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Low     RangeBucket `json:"low"`
	Normal  RangeBucket `json:"normal"`
	High    RangeBucket `json:"high"`
}

type StatsPeriod struct {
	Hours int       `json:"hours"`
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

type StatsService struct {
	store ReadingStore
}

func NewStatsService(store ReadingStore) *StatsService {
	return &StatsService{store: store}
}

// Summary rolls up the lookback window ending now.
func (s *StatsService) Summary(ctx context.Context, ownerID *uint, hours int) (*StatsSummary, *StatsPeriod, error) {
	now := time.Now()
	since := now.Add(-time.Duration(hours) * time.Hour)

	summary, err := s.SummaryFor(ctx, ReadingFilter{OwnerID: ownerID, Since: &since, Until: &now})
	if err != nil {
		return nil, nil, err
	}
	return summary, &StatsPeriod{Hours: hours, Since: since, Until: now}, nil
}

// SummaryFor computes the rollup over an arbitrary filter; the readings list
// endpoint uses it to attach stats for the same window it returned.
func (s *StatsService) SummaryFor(ctx context.Context, f ReadingFilter) (*StatsSummary, error) {
	agg, err := s.store.Aggregate(ctx, f)
	if err != nil {
		return nil, err
	}

	return &StatsSummary{
		Count:   agg.Count,
		Average: RoundTo1(agg.Avg),
		Min:     agg.Min,
		Max:     agg.Max,
		Low:     bucket(agg.LowCount, agg.Count),
		Normal:  bucket(agg.NormalCount, agg.Count),
		High:    bucket(agg.HighCount, agg.Count),
	}, nil
}

// Each bucket percentage rounds independently; the three need not sum to
// exactly 100 and that is intentional.
func bucket(n, total int64) RangeBucket {
	if total == 0 {
		return RangeBucket{}
	}
	return RangeBucket{
		Count:   n,
		Percent: math.Round(float64(n) / float64(total) * 100),
	}
}
