package controllers

import (
	"net/http"
	"time"

	"cgm-backend/config"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

type HealthController struct {
	Cfg *config.AppConfig
}

func NewHealthController(cfg *config.AppConfig) *HealthController {
	return &HealthController{Cfg: cfg}
}

// GET /health — unauthenticated liveness probe.
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(startTime).Round(time.Second).String(),
		"environment": hc.Cfg.Environment,
		"version":     hc.Cfg.Version,
	})
}
