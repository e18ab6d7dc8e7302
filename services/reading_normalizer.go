package services

import (
	"math"
	"time"

	"cgm-backend/models"
)

// Provenance is what the transport layer knows about the uploader. It is
// attached verbatim and never validated.
type Provenance struct {
	SourceIP  string
	UserAgent string
}

// NormalizeReading turns a validated draft into a store-ready record. The
// same now sample feeds both the timestamp default and the future clamp.
func NormalizeReading(draft *ReadingDraft, prov Provenance, now time.Time) *models.GlucoseReading {
	ts := now
	if draft.Timestamp != nil {
		ts = *draft.Timestamp
		if ts.After(now) {
			// A future-dated reading is clamped, not rejected; CGM clocks
			// drift.
			ts = now
		}
	}

	r := &models.GlucoseReading{
		Value:     RoundTo1(draft.Value),
		Timestamp: ts,
		Trend:     models.TrendUnknown,
		Noise:     models.NoiseClean,
		Device:    models.DefaultDevice,
		OwnerID:   draft.OwnerID,
		SourceIP:  prov.SourceIP,
		UserAgent: prov.UserAgent,
	}

	if draft.Trend != nil {
		r.Trend = *draft.Trend
	}
	if draft.Noise != nil {
		r.Noise = *draft.Noise
	}
	if draft.Device != nil && *draft.Device != "" {
		r.Device = *draft.Device
	}

	// Metadata is best-effort: out-of-range values are dropped silently
	// rather than failing the reading.
	r.RawValue = draft.RawValue
	if draft.BatteryLevel != nil && *draft.BatteryLevel >= 0 && *draft.BatteryLevel <= 100 {
		r.BatteryLevel = draft.BatteryLevel
	}
	if draft.SignalStrength != nil && *draft.SignalStrength >= 0 && *draft.SignalStrength <= 100 {
		r.SignalStrength = draft.SignalStrength
	}

	return r
}

// RoundTo1 rounds to one decimal place, halves away from zero.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
