package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal/app"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	"github.com/frahmantamala/epic-events-crm/pkg/logger"
)

// initializeDependencies loads the configuration, opens the store and wires
// the services. The caller closes the store with closeDependencies.
func initializeDependencies(ctx context.Context) (*app.Dependencies, error) {
	config, err := loadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := database.Open(ctx, config.Database, config.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return app.NewDependencies(config, db, lg), nil
}

func closeDependencies(deps *app.Dependencies) {
	sqlDB, err := deps.DB.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		deps.Logger.Error("database close error", "error", err)
	}
}
