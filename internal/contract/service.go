package contract

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*contractDatamodel.Contract, error)
	GetByID(ctx context.Context, id int64) (*contractDatamodel.Contract, error)
	// ListByClientIDs filters by status unless status is empty.
	ListByClientIDs(ctx context.Context, clientIDs []int64, status string) ([]*contractDatamodel.Contract, error)
	Create(ctx context.Context, c *contractDatamodel.Contract) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
}

type ClientLookup interface {
	GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error)
	ListByCommercialContact(ctx context.Context, collaboratorID int64) ([]*clientDatamodel.Client, error)
}

type Service struct {
	repo       RepositoryAPI
	clients    ClientLookup
	authorizer *auth.Authorizer
	publisher  events.Publisher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, clients ClientLookup, authorizer *auth.Authorizer, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:       repo,
		clients:    clients,
		authorizer: authorizer,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, operator *auth.Identity) ([]*Contract, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewContract); err != nil {
		return nil, err
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list contracts", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

func (s *Service) Get(ctx context.Context, operator *auth.Identity, id int64) (*Contract, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewContract); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(c), nil
}

// ContractsFor returns the contracts of the clients owned by collaboratorID,
// narrowed by the filter tag.
func (s *Service) ContractsFor(ctx context.Context, operator *auth.Identity, collaboratorID int64, tag string) ([]*Contract, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewContract); err != nil {
		return nil, err
	}

	status, err := StatusForFilter(tag)
	if err != nil {
		s.logger.WarnContext(ctx, "unsupported contract filter", "filter", tag, "collaborator_id", operator.ID)
		return nil, err
	}

	owned, err := s.clients.ListByCommercialContact(ctx, collaboratorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list owned clients", "error", err, "owner_id", collaboratorID)
		return nil, err
	}
	if len(owned) == 0 {
		return []*Contract{}, nil
	}

	ids := make([]int64, 0, len(owned))
	for _, c := range owned {
		ids = append(ids, c.ID)
	}

	list, err := s.repo.ListByClientIDs(ctx, ids, status)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to filter contracts", "error", err, "owner_id", collaboratorID)
		return nil, err
	}
	return FromDataModels(list), nil
}

// Create opens a contract for an existing client, inheriting its commercial contact.
func (s *Service) Create(ctx context.Context, operator *auth.Identity, dto CreateContractDTO) (*Contract, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapManageContracts); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.clients.GetByID(ctx, dto.ClientID)
	if err != nil {
		return nil, err
	}

	record := ToDataModel(&Contract{
		ClientID:            owner.ID,
		CommercialContactID: owner.CommercialContactID,
		Value:               dto.Value,
		Due:                 dto.Due,
		Status:              dto.Status,
	})
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to create contract", "error", err, "client_id", owner.ID)
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "contract created",
		"collaborator_id", operator.ID,
		"contract_id", created.ID,
		"client_id", owner.ID,
		"status", created.Status)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeContractCreated, operator.ID, "contract", created.ID))
	return FromDataModel(created), nil
}

// Modify is the only way a contract moves between signed and not_signed.
func (s *Service) Modify(ctx context.Context, operator *auth.Identity, id int64, dto UpdateContractDTO) (*Contract, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapManageContracts); err != nil {
		return nil, err
	}

	dto.Normalize()
	if dto.IsEmpty() {
		return nil, internal.ErrNoChanges
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto.Fields()); err != nil {
		s.logger.ErrorContext(ctx, "failed to modify contract", "error", err, "contract_id", id)
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "contract modified", "collaborator_id", operator.ID, "contract_id", id)
	if current.Status != updated.Status {
		s.logger.InfoContext(ctx, "contract status changed", "contract_id", id, "from", current.Status, "to", updated.Status)
		s.publish(ctx, events.NewContractStatusChangedEvent(operator.ID, id, current.Status, updated.Status))
	}
	return FromDataModel(updated), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
