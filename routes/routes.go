package routes

import (
	"log"

	"cgm-backend/config"
	"cgm-backend/controllers"
	"cgm-backend/middlewares"
	"cgm-backend/services"
	"cgm-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := services.NewGormReadingStore(db)
	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(db, cfg)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
	}
	mailer := utils.NewMailer(cfg.AWSRegion, cfg.SESSender)

	alertSvc := services.NewAlertService(db, cfg, hub, push, mailer)
	readingSvc := services.NewReadingService(store, hub, alertSvc, cfg)
	statsSvc := services.NewStatsService(store)
	authSvc := services.NewAuthService(db, cfg)

	readingCtrl := controllers.NewReadingController(readingSvc, statsSvc, cfg)
	statsCtrl := controllers.NewStatsController(statsSvc, cfg)
	alertCtrl := controllers.NewAlertController(alertSvc, cfg)
	deviceCtrl := controllers.NewDeviceController(push, db)
	authCtrl := controllers.NewAuthController(authSvc, cfg)
	realtimeCtrl := controllers.NewRealtimeController(hub)
	healthCtrl := controllers.NewHealthController(cfg)

	r.GET("/health", healthCtrl.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	// Ingestion accepts anonymous uploaders (CGM bridges often cannot hold a
	// session); a presented token still binds the reading to its owner.
	r.POST("/api/ingest", middlewares.AuthMiddleware(cfg, false), readingCtrl.Ingest)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(cfg, true))
	{
		api.GET("/readings", readingCtrl.List)
		api.GET("/readings/latest", readingCtrl.Latest)
		api.GET("/stats", statsCtrl.GetStats)
		api.GET("/stats/:ownerId", statsCtrl.GetStats)
		api.GET("/alerts", alertCtrl.List)
		api.POST("/devices", deviceCtrl.Register)
		api.POST("/devices/toggle", deviceCtrl.Toggle)
	}

	r.GET("/ws/readings", middlewares.AuthMiddleware(cfg, false), realtimeCtrl.ReadingsWS)

	return r
}
