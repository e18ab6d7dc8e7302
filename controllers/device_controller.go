package controllers

import (
	"net/http"

	"cgm-backend/models"
	"cgm-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DeviceController struct {
	Push *services.PushService // nil when SNS is not configured
	DB   *gorm.DB
}

func NewDeviceController(push *services.PushService, db *gorm.DB) *DeviceController {
	return &DeviceController{Push: push, DB: db}
}

// POST /api/devices — register a phone for push alerts.
func (dc *DeviceController) Register(c *gin.Context) {
	if dc.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store", "message": "push notifications are not configured"})
		return
	}

	owner := ownerFromCtx(c)
	if owner == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "auth", "message": "unauthorized"})
		return
	}

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "validation", "message": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(*owner, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "validation", "message": err.Error()})
		return
	}

	respondOK(c, "device registered", gin.H{"endpoint_arn": dev.EndpointARN})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /api/devices/toggle — enable or disable push for all of the owner's
// devices.
func (dc *DeviceController) Toggle(c *gin.Context) {
	owner := ownerFromCtx(c)
	if owner == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "auth", "message": "unauthorized"})
		return
	}

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "validation", "message": "invalid body"})
		return
	}

	if err := dc.DB.Model(&models.UserDevice{}).
		Where("owner_id = ?", *owner).
		Update("enabled", req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "store", "message": "update failed"})
		return
	}

	respondOK(c, "notifications updated", gin.H{"enabled": req.Enabled})
}
