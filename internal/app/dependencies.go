package app

import (
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	authPostgres "github.com/frahmantamala/epic-events-crm/internal/auth/postgres"
	"github.com/frahmantamala/epic-events-crm/internal/client"
	clientPostgres "github.com/frahmantamala/epic-events-crm/internal/client/postgres"
	"github.com/frahmantamala/epic-events-crm/internal/collaborator"
	collaboratorPostgres "github.com/frahmantamala/epic-events-crm/internal/collaborator/postgres"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	contractPostgres "github.com/frahmantamala/epic-events-crm/internal/contract/postgres"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
	"github.com/frahmantamala/epic-events-crm/internal/event"
	eventPostgres "github.com/frahmantamala/epic-events-crm/internal/event/postgres"
	"github.com/frahmantamala/epic-events-crm/internal/workflow"
	"gorm.io/gorm"
)

// Dependencies is the wired application around one store.
type Dependencies struct {
	Config     *internal.Config
	DB         *gorm.DB
	Bus        *events.EventBus
	Oracle     *auth.PermissionChecker
	Authorizer *auth.Authorizer
	Auth       *auth.Service
	Sessions   *auth.SessionManager
	Services   workflow.Services
	Logger     *slog.Logger
}

func NewDependencies(cfg *internal.Config, db *gorm.DB, logger *slog.Logger) *Dependencies {
	bus := events.NewEventBus(logger)
	events.NewAuditLogger(logger).Register(bus)

	oracle := auth.NewPermissionChecker(cfg.Permissions)
	authorizer := auth.NewAuthorizer(oracle, bus, logger)
	authService := auth.NewService(authPostgres.NewRepository(db), cfg.Security, bus, logger)

	collaborators := collaboratorPostgres.NewCollaboratorRepository(db)
	clients := clientPostgres.NewClientRepository(db)
	contracts := contractPostgres.NewContractRepository(db)
	eventRepo := eventPostgres.NewEventRepository(db)

	return &Dependencies{
		Config:     cfg,
		DB:         db,
		Bus:        bus,
		Oracle:     oracle,
		Authorizer: authorizer,
		Auth:       authService,
		Sessions:   auth.NewSessionManager(cfg.Security),
		Services: workflow.Services{
			Collaborators: collaborator.NewService(collaborators, authorizer, oracle, authService, bus, logger),
			Clients:       client.NewService(clients, collaborators, authorizer, bus, logger),
			Contracts:     contract.NewService(contracts, clients, authorizer, bus, logger),
			Events:        event.NewService(eventRepo, contracts, collaborators, authorizer, bus, logger),
			Identities:    authService,
		},
		Logger: logger,
	}
}
