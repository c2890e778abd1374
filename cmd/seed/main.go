package main

import (
	"context"
	"os"

	"ballotbox/internal/config"
	"ballotbox/internal/db"
	"ballotbox/internal/logger"
	"ballotbox/internal/repository"
	"ballotbox/internal/service"
)

// seed creates the administrator account from ADMIN_EMAIL, ADMIN_PASSWORD
// and ADMIN_NAME. Running it again is a no-op.
func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.New(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("connected to database", "driver", cfg.DBDriver)

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, false); err != nil {
		logger.Log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	adminService := service.NewAdminService(repository.NewUserRepository(gormDB))

	admin, created, err := adminService.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Log.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}

	if created {
		logger.Log.Info("admin account created", "id", admin.ID, "email", admin.Email)
	} else {
		logger.Log.Info("account already exists, nothing to do", "id", admin.ID, "email", admin.Email, "role", admin.Role)
	}
}
