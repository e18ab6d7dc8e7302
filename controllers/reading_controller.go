package controllers

import (
	"strconv"
	"time"

	"cgm-backend/config"
	"cgm-backend/services"

	"github.com/gin-gonic/gin"
)

type ReadingController struct {
	Readings *services.ReadingService
	Stats    *services.StatsService
	Cfg      *config.AppConfig
}

func NewReadingController(readings *services.ReadingService, stats *services.StatsService, cfg *config.AppConfig) *ReadingController {
	return &ReadingController{Readings: readings, Stats: stats, Cfg: cfg}
}

// POST /api/ingest
func (rc *ReadingController) Ingest(c *gin.Context) {
	var req services.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, rc.Cfg.Environment, singleViolation("body", "request body must be valid JSON", nil))
		return
	}

	prov := services.Provenance{
		SourceIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	reading, err := rc.Readings.Ingest(c.Request.Context(), req, prov, ownerFromCtx(c))
	if err != nil {
		respondError(c, rc.Cfg.Environment, err)
		return
	}

	respondCreated(c, "reading stored", services.NewReadingView(reading, time.Now()))
}

// GET /api/readings
func (rc *ReadingController) List(c *gin.Context) {
	q, verr := rc.parseListQuery(c)
	if verr != nil {
		respondError(c, rc.Cfg.Environment, verr)
		return
	}

	readings, err := rc.Readings.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, rc.Cfg.Environment, err)
		return
	}

	stats, err := rc.Stats.SummaryFor(c.Request.Context(), services.ReadingFilter{
		OwnerID: q.OwnerID,
		Since:   q.Since,
		Until:   q.Until,
	})
	if err != nil {
		respondError(c, rc.Cfg.Environment, err)
		return
	}

	echo := gin.H{"limit": q.Limit}
	if q.OwnerID != nil {
		echo["ownerId"] = *q.OwnerID
	}
	if q.Since != nil {
		echo["since"] = q.Since.Format(time.RFC3339)
	}
	if q.Until != nil {
		echo["until"] = q.Until.Format(time.RFC3339)
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "readings retrieved",
		"data":    services.NewReadingViews(readings, time.Now()),
		"stats":   stats,
		"query":   echo,
	})
}

// GET /api/readings/latest
func (rc *ReadingController) Latest(c *gin.Context) {
	owner := ownerFromCtx(c)
	if owner == nil {
		var verr *services.ValidationError
		owner, verr = parseOwnerQuery(c)
		if verr != nil {
			respondError(c, rc.Cfg.Environment, verr)
			return
		}
	}

	reading, err := rc.Readings.Latest(c.Request.Context(), owner)
	if err != nil {
		respondError(c, rc.Cfg.Environment, err)
		return
	}

	respondOK(c, "latest reading", services.NewReadingView(reading, time.Now()))
}

func (rc *ReadingController) parseListQuery(c *gin.Context) (services.ListQuery, *services.ValidationError) {
	verr := &services.ValidationError{}
	q := services.ListQuery{Limit: rc.Cfg.DefaultQueryLimit}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > rc.Cfg.MaxQueryLimit {
			verr.Violations = append(verr.Violations, services.FieldViolation{
				Field:         "limit",
				Message:       "limit must be an integer between 1 and " + strconv.Itoa(rc.Cfg.MaxQueryLimit),
				RejectedValue: raw,
			})
		} else {
			q.Limit = n
		}
	}

	if raw := c.Query("since"); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			verr.Violations = append(verr.Violations, services.FieldViolation{
				Field: "since", Message: "since must be an RFC 3339 date-time", RejectedValue: raw,
			})
		} else {
			q.Since = &ts
		}
	}

	if raw := c.Query("until"); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			verr.Violations = append(verr.Violations, services.FieldViolation{
				Field: "until", Message: "until must be an RFC 3339 date-time", RejectedValue: raw,
			})
		} else {
			q.Until = &ts
		}
	}

	// The token owner is authoritative; the ownerId query parameter only
	// applies in demo mode.
	if owner := ownerFromCtx(c); owner != nil {
		q.OwnerID = owner
	} else {
		owner, overr := parseOwnerQuery(c)
		if overr != nil {
			verr.Violations = append(verr.Violations, overr.Violations...)
		} else {
			q.OwnerID = owner
		}
	}

	if len(verr.Violations) > 0 {
		return q, verr
	}
	return q, nil
}

func parseOwnerQuery(c *gin.Context) (*uint, *services.ValidationError) {
	raw := c.Query("ownerId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, singleViolation("ownerId", "ownerId must be a positive integer identifier", raw)
	}
	owner := uint(id)
	return &owner, nil
}
