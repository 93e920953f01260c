package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/epic-events-crm/internal"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	eventDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/event"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured store and verifies the connection.
func Open(ctx context.Context, cfg internal.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.GetDSN()))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, Config(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := internal.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenInMemory returns a migrated single-connection sqlite store.
func OpenInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(":memory:")), Config("error"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a distinct database
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Config(logLevel string) *gorm.Config {
	level := logger.Silent
	if logLevel == "debug" {
		level = logger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}
}

func Models() []interface{} {
	return []interface{}{
		&collaboratorDatamodel.Role{},
		&collaboratorDatamodel.Group{},
		&collaboratorDatamodel.Collaborator{},
		&collaboratorDatamodel.CollaboratorGroup{},
		&clientDatamodel.Client{},
		&contractDatamodel.Contract{},
		&eventDatamodel.Event{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&collaboratorDatamodel.Collaborator{}, "Groups", &collaboratorDatamodel.CollaboratorGroup{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func sqliteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&_foreign_keys=on"
	}
	return source + "?_foreign_keys=on"
}

// Classify maps store errors onto the application taxonomy. Constraint
// violations become validation failures; anything else the store could not
// complete is reported as unavailable storage.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := internal.IsAppError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return internal.NewNotFoundError("record not found", internal.ErrCodeSelectionNotFound).WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return internal.NewValidationError("a record with the same unique value already exists", internal.ErrCodeConstraintViolated).WithCause(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated), isConstraintViolation(err):
		return internal.NewValidationError("the change violates a data constraint", internal.ErrCodeConstraintViolated).WithCause(err)
	}

	return internal.NewStorageUnavailableError(err)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key value")
}

func isConstraintViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "check constraint") || strings.Contains(msg, "not null constraint")
}
