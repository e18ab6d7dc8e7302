package services

import (
	"fmt"
	"time"

	"cgm-backend/models"
)

// Conversion factor between mg/dL and mmol/L.
const mgdlPerMmol = 18.018

// Clinical time-in-range band (mg/dL).
const (
	LowThreshold  = 70.0
	HighThreshold = 180.0
)

func ToMmol(mgdl float64) float64 {
	return RoundTo1(mgdl / mgdlPerMmol)
}

func IsLow(mgdl float64) bool  { return mgdl < LowThreshold }
func IsHigh(mgdl float64) bool { return mgdl > HighThreshold }

// IsInRange includes both band edges: 70 and 180 are in range.
func IsInRange(mgdl float64) bool {
	return mgdl >= LowThreshold && mgdl <= HighThreshold
}

// TimeAgo renders a reading's age relative to now. Evaluated per response,
// never stored.
func TimeAgo(ts, now time.Time) string {
	m := int(now.Sub(ts).Minutes())
	switch {
	case m < 1:
		return "Just now"
	case m < 60:
		return pluralAgo(m, "minute")
	case m < 1440:
		return pluralAgo(m/60, "hour")
	default:
		return pluralAgo(m/1440, "day")
	}
}

func pluralAgo(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// ReadingView is the outbound shape of a reading. Provenance and the sensor
// sidecar never appear here.
type ReadingView struct {
	ID        uint      `json:"id"`
	Value     float64   `json:"value"`
	Mmol      float64   `json:"mmol"`
	Timestamp time.Time `json:"timestamp"`
	Trend     string    `json:"trend"`
	Noise     string    `json:"noise"`
	Device    string    `json:"device"`
	OwnerID   *uint     `json:"ownerId,omitempty"`
	TimeAgo   string    `json:"timeAgo"`
	IsLow     bool      `json:"isLow"`
	IsHigh    bool      `json:"isHigh"`
	IsInRange bool      `json:"isInRange"`
}

func NewReadingView(r *models.GlucoseReading, now time.Time) ReadingView {
	return ReadingView{
		ID:        r.ID,
		Value:     r.Value,
		Mmol:      ToMmol(r.Value),
		Timestamp: r.Timestamp,
		Trend:     r.Trend,
		Noise:     r.Noise,
		Device:    r.Device,
		OwnerID:   r.OwnerID,
		TimeAgo:   TimeAgo(r.Timestamp, now),
		IsLow:     IsLow(r.Value),
		IsHigh:    IsHigh(r.Value),
		IsInRange: IsInRange(r.Value),
	}
}

func NewReadingViews(rs []models.GlucoseReading, now time.Time) []ReadingView {
	views := make([]ReadingView, 0, len(rs))
	for i := range rs {
		views = append(views, NewReadingView(&rs[i], now))
	}
	return views
}
