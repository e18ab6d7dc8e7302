package services

import (
	"testing"
	"time"

	"cgm-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64ptr(v float64) *float64 { return &v }

func TestNormalizeReading_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r := NormalizeReading(&ReadingDraft{Value: 120}, Provenance{}, now)

	assert.Equal(t, now, r.Timestamp)
	assert.Equal(t, models.TrendUnknown, r.Trend)
	assert.Equal(t, models.NoiseClean, r.Noise)
	assert.Equal(t, models.DefaultDevice, r.Device)
	assert.Nil(t, r.OwnerID)
}

func TestNormalizeReading_FutureTimestampClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * time.Minute)

	r := NormalizeReading(&ReadingDraft{Value: 120, Timestamp: &future}, Provenance{}, now)
	assert.Equal(t, now, r.Timestamp, "future timestamps are clamped, not rejected")

	past := now.Add(-10 * time.Minute)
	r = NormalizeReading(&ReadingDraft{Value: 120, Timestamp: &past}, Provenance{}, now)
	assert.Equal(t, past, r.Timestamp)
}

func TestNormalizeReading_ValueRounding(t *testing.T) {
	now := time.Now()
	cases := map[float64]float64{
		120.25:  120.3, // half rounds away from zero
		120.24:  120.2,
		99.9999: 100,
		0:       0,
	}
	for in, want := range cases {
		r := NormalizeReading(&ReadingDraft{Value: in}, Provenance{}, now)
		assert.Equal(t, want, r.Value, "round(%v)", in)
	}
}

func TestNormalizeReading_MetadataBestEffort(t *testing.T) {
	now := time.Now()

	r := NormalizeReading(&ReadingDraft{
		Value:          120,
		RawValue:       f64ptr(118.2),
		BatteryLevel:   f64ptr(150), // out of range, dropped silently
		SignalStrength: f64ptr(80),
	}, Provenance{}, now)

	require.NotNil(t, r.RawValue)
	assert.Equal(t, 118.2, *r.RawValue)
	assert.Nil(t, r.BatteryLevel)
	require.NotNil(t, r.SignalStrength)
	assert.Equal(t, 80.0, *r.SignalStrength)
}

func TestNormalizeReading_ProvenanceAttached(t *testing.T) {
	r := NormalizeReading(&ReadingDraft{Value: 120}, Provenance{
		SourceIP:  "198.51.100.4",
		UserAgent: "xDrip+/2024.1",
	}, time.Now())

	assert.Equal(t, "198.51.100.4", r.SourceIP)
	assert.Equal(t, "xDrip+/2024.1", r.UserAgent)
}
