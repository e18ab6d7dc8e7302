package controllers

import (
	"net/http"

	"cgm-backend/services"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

// respondError maps the error taxonomy onto status codes and stable kind
// strings. Store internals are only echoed back in development.
func respondError(c *gin.Context, environment string, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "validation",
			"message": "validation failed",
			"details": e.Violations,
		})
	case *services.DuplicateError:
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "duplicate",
			"message": e.Detail,
		})
	case *services.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "not_found",
			"message": e.Error(),
		})
	default:
		msg := "internal server error"
		if environment == "development" {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "store",
			"message": msg,
		})
	}
}

// ownerFromCtx returns the authenticated owner, nil in demo mode.
func ownerFromCtx(c *gin.Context) *uint {
	v, ok := c.Get("ownerID")
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func singleViolation(field, message string, rejected any) *services.ValidationError {
	return &services.ValidationError{Violations: []services.FieldViolation{
		{Field: field, Message: message, RejectedValue: rejected},
	}}
}
