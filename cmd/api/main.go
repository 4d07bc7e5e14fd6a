package main

import (
	"context"
	"log"
	"strings"

	"jobboard-backend/internal/bootstrap"
	"jobboard-backend/internal/shared/config"
	"jobboard-backend/internal/shared/server"
	"jobboard-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	defer telemetry.Sync()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	if strings.TrimSpace(cfg.AdminEmail) != "" && cfg.AdminPassword != "" {
		if _, err := app.UsersService.CreateStaff(context.Background(), "Admin", cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("create staff account: %v", err)
		}
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env, "object_store": cfg.ObjectStoreType})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
