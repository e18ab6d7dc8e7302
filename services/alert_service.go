package services

import (
	"fmt"
	"log"
	"time"

	"cgm-backend/config"
	"cgm-backend/models"
	"cgm-backend/utils"

	"gorm.io/gorm"
)

// Glucose alert thresholds (mg/dL). Urgent low additionally triggers an
// email when alert emails are enabled.
const urgentLowThreshold = 55.0

// AlertService reacts to stored out-of-range readings: persist an alert row,
// broadcast it on the websocket hub, push to the owner's phones, and mail on
// urgent lows. Everything here is fire-and-forget; failures are logged and
// swallowed, never surfaced to the ingestion caller.
type AlertService struct {
	db     *gorm.DB
	cfg    *config.AppConfig
	hub    *RealtimeHub
	push   *PushService // nil when SNS is not configured
	mailer *utils.Mailer
}

func NewAlertService(db *gorm.DB, cfg *config.AppConfig, hub *RealtimeHub, push *PushService, mailer *utils.Mailer) *AlertService {
	return &AlertService{db: db, cfg: cfg, hub: hub, push: push, mailer: mailer}
}

func (a *AlertService) ReadingStored(r *models.GlucoseReading) {
	level := classify(r.Value)
	if level == "" {
		return
	}

	msg := alertMessage(level, r.Value)
	alert := &models.Alert{
		OwnerID:   r.OwnerID,
		ReadingID: r.ID,
		Level:     level,
		Message:   msg,
		CreatedAt: time.Now(),
	}
	if err := a.db.Create(alert).Error; err != nil {
		log.Printf("alert persist failed: %v", err)
	}

	if a.hub != nil {
		a.hub.BroadcastAlert(r.OwnerID, alert)
	}

	if r.OwnerID == nil {
		return // push and mail need an owner
	}

	if a.push != nil {
		a.push.PushToOwner(*r.OwnerID, "Glucose alert", msg, map[string]string{
			"level":   level,
			"alertId": fmt.Sprintf("%d", alert.ID),
		})
	}

	if level == "urgent_low" && a.cfg.AlertEmails && a.mailer != nil {
		var owner models.User
		if err := a.db.First(&owner, *r.OwnerID).Error; err != nil {
			log.Printf("alert mail skipped, owner lookup failed: %v", err)
			return
		}
		if err := a.mailer.SendGlucoseAlert(owner.Email, r.Value, r.Timestamp); err != nil {
			log.Printf("alert mail failed: %v", err)
		}
	}
}

func (a *AlertService) Recent(ownerID *uint, limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	q := a.db.Order("created_at DESC, id DESC").Limit(limit)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	} else {
		q = q.Where("owner_id IS NULL")
	}
	if err := q.Find(&alerts).Error; err != nil {
		return nil, &StoreError{Op: "list alerts", Err: err}
	}
	return alerts, nil
}

func classify(value float64) string {
	switch {
	case value < urgentLowThreshold:
		return "urgent_low"
	case IsLow(value):
		return "low"
	case IsHigh(value):
		return "high"
	default:
		return ""
	}
}

func alertMessage(level string, value float64) string {
	switch level {
	case "urgent_low":
		return fmt.Sprintf("URGENT LOW: glucose %.1f mg/dL", value)
	case "low":
		return fmt.Sprintf("Low glucose: %.1f mg/dL", value)
	default:
		return fmt.Sprintf("High glucose: %.1f mg/dL", value)
	}
}
