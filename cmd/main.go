package main

import (
	"log"

	"cgm-backend/config"
	"cgm-backend/routes"
)

func main() {
	cfg := config.Load()
	db := config.InitDB(cfg)

	r := routes.SetupRouter(db, cfg)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
