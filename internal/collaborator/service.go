package collaborator

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*collaboratorDatamodel.Collaborator, error)
	GetByID(ctx context.Context, id int64) (*collaboratorDatamodel.Collaborator, error)
	// FindByField returns nil when no other collaborator holds value.
	FindByField(ctx context.Context, field, value string, excludeID int64) (*collaboratorDatamodel.Collaborator, error)
	ListByRoleName(ctx context.Context, role string) ([]*collaboratorDatamodel.Collaborator, error)
	Create(ctx context.Context, c *collaboratorDatamodel.Collaborator, role RoleChange) error
	Update(ctx context.Context, id int64, fields map[string]interface{}, role *RoleChange) error
	Delete(ctx context.Context, id int64) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type GroupResolver interface {
	GroupForRole(role string) (string, bool)
}

type Service struct {
	repo       RepositoryAPI
	authorizer *auth.Authorizer
	groups     GroupResolver
	hasher     PasswordHasher
	publisher  events.Publisher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, authorizer *auth.Authorizer, groups GroupResolver, hasher PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		groups:     groups,
		hasher:     hasher,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, operator *auth.Identity) ([]*Collaborator, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewCollaborator); err != nil {
		return nil, err
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list collaborators", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// ListSupport returns the collaborators an event can be assigned to.
func (s *Service) ListSupport(ctx context.Context, operator *auth.Identity) ([]*Collaborator, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapAssignEventSupport); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByRoleName(ctx, internal.RoleSupport)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list support collaborators", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// ListSales returns the collaborators a client can be assigned to.
func (s *Service) ListSales(ctx context.Context, operator *auth.Identity) ([]*Collaborator, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapViewCollaborator); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByRoleName(ctx, internal.RoleSales)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list sales collaborators", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// Get allows any collaborator to read their own record.
func (s *Service) Get(ctx context.Context, operator *auth.Identity, id int64) (*Collaborator, error) {
	if operator == nil || operator.ID != id {
		if err := s.authorizer.Require(ctx, operator, auth.CapViewCollaborator); err != nil {
			return nil, err
		}
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(c), nil
}

func (s *Service) Create(ctx context.Context, operator *auth.Identity, dto CreateCollaboratorDTO) (*Collaborator, error) {
	if err := s.authorizer.Require(ctx, operator, auth.CapManageCollaborators); err != nil {
		return nil, err
	}

	dto.Normalize()
	if err := dto.Validate(); err != nil {
		s.logger.WarnContext(ctx, "collaborator validation failed", "error", err, "collaborator_id", operator.ID)
		return nil, err
	}

	if err := s.checkUnique(ctx, 0, map[string]string{
		"username":        dto.Username,
		"email":           dto.Email,
		"employee_number": dto.EmployeeNumber,
	}); err != nil {
		return nil, err
	}

	group, ok := s.groups.GroupForRole(dto.Role)
	if !ok {
		return nil, internal.NewValidationFieldError("role", "Unknown role "+dto.Role, internal.ErrCodeInvalidRole)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, err
	}

	record := ToDataModel(&Collaborator{
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		Username:       dto.Username,
		Email:          dto.Email,
		EmployeeNumber: dto.EmployeeNumber,
	}, hash)

	if err := s.repo.Create(ctx, record, RoleChange{RoleName: dto.Role, GroupName: group}); err != nil {
		s.logger.ErrorContext(ctx, "failed to create collaborator", "error", err, "username", dto.Username)
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "collaborator registered",
		"collaborator_id", operator.ID,
		"new_collaborator_id", created.ID,
		"role", dto.Role)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeCollaboratorRegistered, operator.ID, "collaborator", created.ID))

	return FromDataModel(created), nil
}

// Modify applies a partial update. Without manage_collaborators an operator
// may still edit their own names, username and email.
func (s *Service) Modify(ctx context.Context, operator *auth.Identity, id int64, dto UpdateCollaboratorDTO) (*Collaborator, error) {
	dto.Normalize()

	selfService := operator != nil && operator.ID == id && !s.authorizer.Can(operator, auth.CapManageCollaborators)
	if !selfService {
		if err := s.authorizer.Require(ctx, operator, auth.CapManageCollaborators); err != nil {
			return nil, err
		}
	} else if dto.Role != nil || dto.EmployeeNumber != nil {
		return nil, s.authorizer.Deny(ctx, operator, auth.CapManageCollaborators, internal.MissingCapability(auth.CapManageCollaborators))
	}

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

	unique := map[string]string{}
	if dto.Username != nil {
		unique["username"] = *dto.Username
	}
	if dto.Email != nil {
		unique["email"] = *dto.Email
	}
	if dto.EmployeeNumber != nil {
		unique["employee_number"] = *dto.EmployeeNumber
	}
	if err := s.checkUnique(ctx, id, unique); err != nil {
		return nil, err
	}

	var change *RoleChange
	previousRole := current.RoleName()
	if dto.Role != nil && *dto.Role != previousRole {
		group, ok := s.groups.GroupForRole(*dto.Role)
		if !ok {
			return nil, internal.NewValidationFieldError("role", "Unknown role "+*dto.Role, internal.ErrCodeInvalidRole)
		}
		change = &RoleChange{RoleName: *dto.Role, GroupName: group}
	}

	fields := dto.Fields()
	if len(fields) == 0 && change == nil {
		return nil, internal.ErrNoChanges
	}

	if err := s.repo.Update(ctx, id, fields, change); err != nil {
		s.logger.ErrorContext(ctx, "failed to modify collaborator", "error", err, "target_id", id)
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "collaborator modified", "collaborator_id", operator.ID, "target_id", id, "self_service", selfService)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeCollaboratorModified, operator.ID, "collaborator", id))
	if change != nil {
		s.publish(ctx, events.NewRoleChangedEvent(operator.ID, id, previousRole, change.RoleName))
	}

	return FromDataModel(updated), nil
}

// Delete removes a collaborator once the operator confirmed. Records that
// referenced them keep existing with the reference cleared.
func (s *Service) Delete(ctx context.Context, operator *auth.Identity, id int64, confirmed bool) error {
	if err := s.authorizer.Require(ctx, operator, auth.CapManageCollaborators); err != nil {
		return err
	}
	if !confirmed {
		return internal.ErrDeclined
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete collaborator", "error", err, "target_id", id)
		return err
	}

	s.logger.InfoContext(ctx, "collaborator deleted", "collaborator_id", operator.ID, "target_id", id)
	s.publish(ctx, events.NewRecordEvent(events.EventTypeCollaboratorDeleted, operator.ID, "collaborator", id))
	return nil
}

var uniqueFieldOrder = []string{"username", "email", "employee_number"}

func (s *Service) checkUnique(ctx context.Context, excludeID int64, values map[string]string) error {
	for _, field := range uniqueFieldOrder {
		value, ok := values[field]
		if !ok {
			continue
		}
		existing, err := s.repo.FindByField(ctx, field, value, excludeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return internal.NewDuplicateValueError(field, value)
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
