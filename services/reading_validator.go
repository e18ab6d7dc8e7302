package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cgm-backend/models"
)

// IngestRequest is the raw ingestion payload. Value and OwnerID are untyped
// because CGM uploaders send them both as numbers and as strings, and a bad
// type still needs to be reported back as a rejected value.
type IngestRequest struct {
	Value          any      `json:"value"`
	Timestamp      *string  `json:"timestamp"`
	Trend          *string  `json:"trend"`
	Noise          *string  `json:"noise"`
	Device         *string  `json:"device"`
	OwnerID        any      `json:"ownerId"`
	RawValue       *float64 `json:"rawValue"`
	BatteryLevel   *float64 `json:"batteryLevel"`
	SignalStrength *float64 `json:"signalStrength"`
}

// ReadingDraft is a validated payload waiting for normalization. Optional
// fields stay nil so the normalizer can tell "absent" from "zero".
type ReadingDraft struct {
	Value          float64
	Timestamp      *time.Time
	Trend          *string
	Noise          *string
	Device         *string
	OwnerID        *uint
	RawValue       *float64
	BatteryLevel   *float64
	SignalStrength *float64
}

const maxDeviceLen = 100

// ValidateReading runs every rule and collects every violation before
// failing; a payload with three bad fields produces three entries, not one.
func ValidateReading(req IngestRequest) (*ReadingDraft, *ValidationError) {
	verr := &ValidationError{}
	draft := &ReadingDraft{
		RawValue:       req.RawValue,
		BatteryLevel:   req.BatteryLevel,
		SignalStrength: req.SignalStrength,
	}

	if v, ok := parseNumber(req.Value); req.Value == nil {
		verr.add("value", "value is required", nil)
	} else if !ok {
		verr.add("value", "value must be a finite number", req.Value)
	} else if v < 0 || v > 1000 {
		verr.add("value", "value must be between 0 and 1000 mg/dL", v)
	} else {
		draft.Value = v
	}

	if req.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339Nano, *req.Timestamp)
		if err != nil {
			verr.add("timestamp", "timestamp must be an RFC 3339 date-time", *req.Timestamp)
		} else {
			draft.Timestamp = &ts
		}
	}

	if req.Trend != nil {
		if !models.ValidTrend(*req.Trend) {
			verr.add("trend", "trend must be one of Rising, Falling, Stable, Unknown", *req.Trend)
		} else {
			draft.Trend = req.Trend
		}
	}

	if req.Noise != nil {
		if !models.ValidNoise(*req.Noise) {
			verr.add("noise", "noise must be one of Clean, Light, Medium, Heavy", *req.Noise)
		} else {
			draft.Noise = req.Noise
		}
	}

	if req.Device != nil {
		trimmed := strings.TrimSpace(*req.Device)
		if utf8.RuneCountInString(trimmed) > maxDeviceLen {
			verr.add("device", fmt.Sprintf("device must be at most %d characters", maxDeviceLen), *req.Device)
		} else {
			draft.Device = &trimmed
		}
	}

	if req.OwnerID != nil {
		if id, ok := parseOwnerID(req.OwnerID); !ok {
			verr.add("ownerId", "ownerId must be a positive integer identifier", req.OwnerID)
		} else {
			draft.OwnerID = &id
		}
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}
	return draft, nil
}

// parseNumber accepts JSON numbers and numeric strings, rejects NaN/Inf.
func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func parseOwnerID(v any) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != math.Trunc(n) {
			return 0, false
		}
		return uint(n), true
	case string:
		id, err := strconv.ParseUint(strings.TrimSpace(n), 10, 32)
		if err != nil || id == 0 {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}
