package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	eventDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/event"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
)

var (
	errContractNotSigned = internal.NewValidationError("The contract is not signed. Events can only be created for signed contracts.", internal.ErrCodeContractNotSigned)
	errNotClientOwner    = internal.NewPermissionDeniedError("You can only create events for your own clients.", internal.ErrCodeNotOwner)
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*eventDatamodel.Event, error)
	GetByID(ctx context.Context, id int64) (*eventDatamodel.Event, error)
	ListBySupportState(ctx context.Context, assigned bool) ([]*eventDatamodel.Event, error)
	ListBySupportContact(ctx context.Context, collaboratorID int64) ([]*eventDatamodel.Event, error)
	Create(ctx context.Context, e *eventDatamodel.Event) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
}

// ContractLookup must preload the contract's client.
type ContractLookup interface {
	GetByID(ctx context.Context, id int64) (*contractDatamodel.Contract, error)
}

// CollaboratorLookup must preload the collaborator's role.
type CollaboratorLookup interface {
	GetByID(ctx context.Context, id int64) (*collaboratorDatamodel.Collaborator, error)
}

type Service struct {
	repo          RepositoryAPI
	contracts     ContractLookup
	collaborators CollaboratorLookup
	authorizer    *auth.Authorizer
	publisher     events.Publisher
	logger        *slog.Logger
}

func NewService(repo RepositoryAPI, contracts ContractLookup, collaborators CollaboratorLookup, authorizer *auth.Authorizer, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:          repo,
		contracts:     contracts,
		collaborators: collaborators,
		authorizer:    authorizer,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *Service) List(ctx context.Context, operator *auth.Identity) ([]*Event, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewEvent); err != nil {
		return nil, err
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list events", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// ListBySupportState filters events on whether a support contact is set.
func (s *Service) ListBySupportState(ctx context.Context, operator *auth.Identity, state string) ([]*Event, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewEvent); err != nil {
		return nil, err
	}

	var (
		list []*eventDatamodel.Event
		err  error
	)
	switch state {
	case SupportAll:
		list, err = s.repo.GetAll(ctx)
	case SupportAssigned:
		list, err = s.repo.ListBySupportState(ctx, true)
	case SupportUnassigned:
		list, err = s.repo.ListBySupportState(ctx, false)
	default:
		return nil, internal.NewValidationError(fmt.Sprintf("Unsupported support filter %q.", state), internal.ErrCodeUnsupportedFilter)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to filter events", "error", err, "support_state", state)
		return nil, err
	}
	return FromDataModels(list), nil
}

// EventsForSupport lists the events assigned to operator.
func (s *Service) EventsForSupport(ctx context.Context, operator *auth.Identity) ([]*Event, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewEvent); err != nil {
		return nil, err
	}

	list, err := s.repo.ListBySupportContact(ctx, operator.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list assigned events", "error", err, "collaborator_id", operator.ID)
		return nil, err
	}
	return FromDataModels(list), nil
}

// CreateFromContract opens an event on a signed contract of one of the
// operator's clients. Nothing is written unless every check passes.
func (s *Service) CreateFromContract(ctx context.Context, operator *auth.Identity, dto CreateEventDTO) (*Event, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapAddEvent); err != nil {
		return nil, err
	}

	c, err := s.contracts.GetByID(ctx, dto.ContractID)
	if err != nil {
		return nil, err
	}
	if c.Status != contractDatamodel.StatusSigned {
		s.logger.WarnContext(ctx, "event refused on unsigned contract", "collaborator_id", operator.ID, "contract_id", c.ID)
		return nil, errContractNotSigned
	}
	var clientContactID *int64
	if c.Client != nil {
		clientContactID = c.Client.CommercialContactID
	}
	if err := s.authorizer.RequireOwnership(ctx, operator, auth.CapAddEvent, auth.ActionCreateEvent, clientContactID, errNotClientOwner); err != nil {
		return nil, err
	}

	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	contractID := c.ID
	record := ToDataModel(&Event{
		ContractID:    &contractID,
		ClientID:      c.ClientID,
		ClientName:    clientName(c),
		ClientContact: dto.ClientContact,
		Name:          dto.Name,
		DayStart:      dto.DayStart,
		DateEnd:       dto.DateEnd,
		Location:      dto.Location,
		Attendees:     dto.Attendees,
		Notes:         dto.Notes,
	})
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to create event", "error", err, "contract_id", c.ID)
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "event created", "collaborator_id", operator.ID, "event_id", created.ID, "contract_id", c.ID)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeEventCreated, operator.ID, "event", created.ID))
	return FromDataModel(created), nil
}

// Modify applies a partial update. Support may only edit events assigned to them.
func (s *Service) Modify(ctx context.Context, operator *auth.Identity, id int64, dto UpdateEventDTO) (*Event, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapChangeEvent); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.RequireOwnership(ctx, operator, auth.CapChangeEvent, auth.ActionEditEvent, current.SupportContactID, internal.ErrNotOwner); err != nil {
		return nil, err
	}
	existing := FromDataModel(current)

	dto.Normalize()
	if dto.IsEmpty() {
		return nil, internal.ErrNoChanges
	}
	if err := dto.Validate(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto.Fields()); err != nil {
		s.logger.ErrorContext(ctx, "failed to modify event", "error", err, "event_id", id)
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event modified", "collaborator_id", operator.ID, "event_id", id)
	return FromDataModel(updated), nil
}

// AssignSupport sets the support contact of an event to a collaborator holding the support role.
func (s *Service) AssignSupport(ctx context.Context, operator *auth.Identity, eventID, supportID int64) (*Event, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapAssignEventSupport); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	target, err := s.collaborators.GetByID(ctx, supportID)
	if err != nil {
		return nil, err
	}
	if target.RoleName() != internal.RoleSupport {
		return nil, internal.NewValidationError(
			fmt.Sprintf("%s does not have the support role.", target.Username),
			internal.ErrCodeNotSupportRole,
		)
	}

	if err := s.repo.Update(ctx, eventID, map[string]interface{}{"support_contact_id": target.ID}); err != nil {
		s.logger.ErrorContext(ctx, "failed to assign support", "error", err, "event_id", eventID)
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "support assigned", "collaborator_id", operator.ID, "event_id", eventID, "support_id", target.ID)
	s.publish(ctx, events.NewSupportAssignedEvent(operator.ID, eventID, target.ID))
	return FromDataModel(updated), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func clientName(c *contractDatamodel.Contract) string {
	if c.Client == nil {
		return ""
	}
	return c.Client.Name
}
