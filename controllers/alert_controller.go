package controllers

import (
	"strconv"

	"cgm-backend/config"
	"cgm-backend/services"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	Alerts *services.AlertService
	Cfg    *config.AppConfig
}

func NewAlertController(alerts *services.AlertService, cfg *config.AppConfig) *AlertController {
	return &AlertController{Alerts: alerts, Cfg: cfg}
}

// GET /api/alerts
func (ac *AlertController) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > ac.Cfg.MaxQueryLimit {
			respondError(c, ac.Cfg.Environment, singleViolation("limit",
				"limit must be an integer between 1 and "+strconv.Itoa(ac.Cfg.MaxQueryLimit), raw))
			return
		}
		limit = n
	}

	owner := ownerFromCtx(c)
	if owner == nil {
		var verr *services.ValidationError
		owner, verr = parseOwnerQuery(c)
		if verr != nil {
			respondError(c, ac.Cfg.Environment, verr)
			return
		}
	}

	alerts, err := ac.Alerts.Recent(owner, limit)
	if err != nil {
		respondError(c, ac.Cfg.Environment, err)
		return
	}

	respondOK(c, "alerts retrieved", alerts)
}
