package models

import "time"

// Trend tags as reported by the CGM client.
const (
	TrendRising  = "Rising"
	TrendFalling = "Falling"
	TrendStable  = "Stable"
	TrendUnknown = "Unknown"
)

// Noise is the sensor signal-quality tag.
const (
	NoiseClean  = "Clean"
	NoiseLight  = "Light"
	NoiseMedium = "Medium"
	NoiseHeavy  = "Heavy"
)

// DefaultDevice labels readings whose uploader did not identify itself.
const DefaultDevice = "CGM-Sensor"

// One glucose measurement. Immutable once inserted; there is no update path.
// The unique index over (device, timestamp, value) absorbs uploader retries
// re-posting the same sample.
type GlucoseReading struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Value     float64   `gorm:"not null;uniqueIndex:uniq_reading_sample,priority:3" json:"value"` // mg/dL, 1 decimal place
	Timestamp time.Time `gorm:"index:idx_readings_time,sort:desc;index:idx_readings_owner_time,priority:2,sort:desc;uniqueIndex:uniq_reading_sample,priority:2;not null" json:"timestamp"`
	Trend     string    `gorm:"size:16" json:"trend"`
	Noise     string    `gorm:"size:16" json:"noise"`
	Device    string    `gorm:"size:100;uniqueIndex:uniq_reading_sample,priority:1" json:"device"`
	OwnerID   *uint     `gorm:"index:idx_readings_owner_time,priority:1" json:"ownerId,omitempty"` // nil in demo mode

	// Best-effort sensor sidecar, never serialized outbound.
	RawValue       *float64 `json:"-"`
	BatteryLevel   *float64 `json:"-"`
	SignalStrength *float64 `json:"-"`

	// Request provenance captured at ingestion, never serialized outbound.
	SourceIP  string `gorm:"size:45" json:"-"`
	UserAgent string `gorm:"size:256" json:"-"`

	CreatedAt time.Time `json:"-"`
}

func ValidTrend(s string) bool {
	switch s {
	case TrendRising, TrendFalling, TrendStable, TrendUnknown:
		return true
	}
	return false
}

func ValidNoise(s string) bool {
	switch s {
	case NoiseClean, NoiseLight, NoiseMedium, NoiseHeavy:
		return true
	}
	return false
}
