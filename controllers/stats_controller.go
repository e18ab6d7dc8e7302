package controllers

import (
	"strconv"

	"cgm-backend/config"
	"cgm-backend/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats *services.StatsService
	Cfg   *config.AppConfig
}

func NewStatsController(stats *services.StatsService, cfg *config.AppConfig) *StatsController {
	return &StatsController{Stats: stats, Cfg: cfg}
}

// GET /api/stats and /api/stats/:ownerId
func (sc *StatsController) GetStats(c *gin.Context) {
	hours := sc.Cfg.DefaultStatsHours
	if raw := c.Query("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, sc.Cfg.Environment, singleViolation("hours", "hours must be a positive integer", raw))
			return
		}
		hours = n
	}

	owner := ownerFromCtx(c)
	if owner == nil {
		if raw := c.Param("ownerId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				respondError(c, sc.Cfg.Environment, singleViolation("ownerId", "ownerId must be a positive integer identifier", raw))
				return
			}
			oid := uint(id)
			owner = &oid
		}
	}

	summary, period, err := sc.Stats.Summary(c.Request.Context(), owner, hours)
	if err != nil {
		respondError(c, sc.Cfg.Environment, err)
		return
	}

	respondOK(c, "stats computed", gin.H{"summary": summary, "period": period})
}
