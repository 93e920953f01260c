package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*clientDatamodel.Client, error)
	GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error)
	ListByCommercialContact(ctx context.Context, collaboratorID int64) ([]*clientDatamodel.Client, error)
	Create(ctx context.Context, c *clientDatamodel.Client) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	// Delete removes the client with its contracts and their events.
	Delete(ctx context.Context, id int64) error
}

// CollaboratorLookup resolves an explicitly chosen commercial contact.
type CollaboratorLookup interface {
	GetByID(ctx context.Context, id int64) (*collaboratorDatamodel.Collaborator, error)
}

type Service struct {
	repo          RepositoryAPI
	collaborators CollaboratorLookup
	authorizer    *auth.Authorizer
	publisher     events.Publisher
	logger        *slog.Logger
}

func NewService(repo RepositoryAPI, collaborators CollaboratorLookup, authorizer *auth.Authorizer, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:          repo,
		collaborators: collaborators,
		authorizer:    authorizer,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *Service) List(ctx context.Context, operator *auth.Identity) ([]*Client, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewClient); err != nil {
		return nil, err
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list clients", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// ListOwned returns the clients whose commercial contact is the operator.
func (s *Service) ListOwned(ctx context.Context, operator *auth.Identity) ([]*Client, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewClient); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByCommercialContact(ctx, operator.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list owned clients", "error", err, "collaborator_id", operator.ID)
		return nil, err
	}
	return FromDataModels(list), nil
}

func (s *Service) Get(ctx context.Context, operator *auth.Identity, id int64) (*Client, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewClient); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(c), nil
}

// Create stamps the operator as commercial contact. Operators outside the
// sales role may name another collaborator of the sales role instead.
func (s *Service) Create(ctx context.Context, operator *auth.Identity, dto CreateClientDTO) (*Client, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapAddClient); err != nil {
		return nil, err
	}

	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ownerID := operator.ID
	if dto.CommercialContactID != nil && !operator.HasRole(internal.RoleSales) {
		owner, err := s.collaborators.GetByID(ctx, *dto.CommercialContactID)
		if err != nil {
			return nil, err
		}
		if owner.RoleName() != internal.RoleSales {
			return nil, internal.NewValidationError(
				fmt.Sprintf("%s does not have the sales role.", owner.Username),
				internal.ErrCodeNotSalesRole,
			)
		}
		ownerID = owner.ID
	}

	record := ToDataModel(&Client{
		Name:                dto.Name,
		Email:               dto.Email,
		Phone:               dto.Phone,
		CompanyName:         dto.CompanyName,
		CommercialContactID: &ownerID,
	})
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to create client", "error", err, "collaborator_id", operator.ID)
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "client created", "collaborator_id", operator.ID, "client_id", created.ID)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeClientCreated, operator.ID, "client", created.ID))
	return FromDataModel(created), nil
}

// Modify applies a partial update. A sales operator may only edit their own clients.
func (s *Service) Modify(ctx context.Context, operator *auth.Identity, id int64, dto UpdateClientDTO) (*Client, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapChangeClient); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.RequireOwnership(ctx, operator, auth.CapChangeClient, auth.ActionModifyClient, current.CommercialContactID, internal.ErrNotOwner); err != nil {
		return nil, err
	}

	dto.Normalize()
	if dto.IsEmpty() {
		return nil, internal.ErrNoChanges
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto.Fields()); err != nil {
		s.logger.ErrorContext(ctx, "failed to modify client", "error", err, "client_id", id)
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "client modified", "collaborator_id", operator.ID, "client_id", id)
	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, operator *auth.Identity, id int64, confirmed bool) error {
	if err := s.authorizer.Require(ctx, operator, auth.CapDeleteClient); err != nil {
		return err
	}
	if !confirmed {
		return internal.ErrDeclined
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete client", "error", err, "client_id", id)
		return err
	}

	s.logger.InfoContext(ctx, "client deleted", "collaborator_id", operator.ID, "client_id", id)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeClientDeleted, operator.ID, "client", id))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
