package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/client"
	"github.com/frahmantamala/epic-events-crm/internal/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	"github.com/frahmantamala/epic-events-crm/internal/event"
	"github.com/frahmantamala/epic-events-crm/pkg/logger"
	"github.com/google/uuid"
)

// IdentityResolver reloads the identity of a stored collaborator. An
// unauthorized error means the collaborator is gone or inactive.
type IdentityResolver interface {
	Resolve(ctx context.Context, collaboratorID int64) (*auth.Identity, error)
}

// Services are the lifecycle engines a session drives.
type Services struct {
	Collaborators *collaborator.Service
	Clients       *client.Service
	Contracts     *contract.Service
	Events        *event.Service
	Identities    IdentityResolver
}

type menuItem struct {
	label string
	step  func(context.Context) error
}

// Session runs the role menu of one authenticated collaborator.
type Session struct {
	*BaseHandler
	services Services
	operator *auth.Identity
	ended    bool
}

func NewSession(presenter Presenter, services Services, operator *auth.Identity, lg *slog.Logger) *Session {
	return &Session{
		BaseHandler: NewBaseHandler(presenter, lg),
		services:    services,
		operator:    operator,
	}
}

// Run loops over the operator's menu until they exit, input ends or the
// operator loses access. Step failures are rendered and the loop goes on.
func (s *Session) Run(ctx context.Context) error {
	ctx = internal.ContextWithCollaboratorID(ctx, s.operator.ID)
	ctx = logger.Into(ctx, s.Logger)
	ctx = logger.With(ctx, "session_id", uuid.NewString(), "session_collaborator_id", s.operator.ID)
	s.Logger = logger.From(ctx)

	if s.menuFor() == nil {
		s.warnNoRole(ctx)
		return nil
	}
	s.Logger.InfoContext(ctx, "session started", "collaborator_id", s.operator.ID, "role", s.operator.Role)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// rebuilt every round so a role change applies to the next choice
		items := s.menuFor()
		if items == nil {
			s.warnNoRole(ctx)
			return nil
		}
		labels := make([]string, 0, len(items)+1)
		for _, item := range items {
			labels = append(labels, item.label)
		}
		labels = append(labels, "Exit")

		choice, err := s.Presenter.Menu(fmt.Sprintf("Epic Events - %s", s.operator.String()), labels)
		if err != nil {
			if isEOF(err) {
				return nil
			}
			return err
		}

		switch {
		case choice == len(items):
			s.Logger.InfoContext(ctx, "session ended", "collaborator_id", s.operator.ID)
			s.Presenter.ShowMessage(MessageInfo, "Goodbye.")
			return nil
		case choice < 0 || choice > len(items):
			s.Presenter.ShowMessage(MessageError, "Invalid choice. Please select one of the listed options.")
			continue
		}

		item := items[choice]
		if err := s.RunStep(ctx, item.label, item.step); err != nil {
			if isEOF(err) {
				return nil
			}
			return err
		}
		if s.ended {
			return nil
		}
	}
}

func (s *Session) warnNoRole(ctx context.Context) {
	s.Logger.WarnContext(ctx, "collaborator without role", "collaborator_id", s.operator.ID)
	s.Presenter.ShowMessage(MessageWarning, "Your account has no role assigned yet. Please contact the management team.")
}

// refreshOperator reloads the operator after a change to their own record.
func (s *Session) refreshOperator(ctx context.Context) error {
	if s.services.Identities == nil {
		return nil
	}

	identity, err := s.services.Identities.Resolve(ctx, s.operator.ID)
	if err != nil {
		if internal.IsType(err, internal.ErrorTypeUnauthorized) {
			s.endSession(ctx, "Your account is no longer active. The session has ended.")
			return nil
		}
		return err
	}

	if identity.Role != s.operator.Role {
		s.Logger.InfoContext(ctx, "operator role changed",
			"collaborator_id", identity.ID,
			"previous_role", s.operator.Role,
			"role", identity.Role)
		s.Presenter.ShowMessage(MessageInfo, "Your role has changed. The menu now follows your new permissions.")
	}
	s.operator = identity
	return nil
}

func (s *Session) endSession(ctx context.Context, message string) {
	s.Logger.InfoContext(ctx, "session closed", "collaborator_id", s.operator.ID)
	s.Presenter.ShowMessage(MessageWarning, message)
	s.ended = true
}

func (s *Session) menuFor() []menuItem {
	var items []menuItem
	switch s.operator.Role {
	case internal.RoleManagement:
		items = []menuItem{
			{"Create a collaborator", s.createCollaborator},
			{"Update a collaborator", s.updateCollaborator},
			{"Delete a collaborator", s.deleteCollaborator},
			{"Create a contract", s.createContract},
			{"Update a contract", s.updateContract},
			{"Filter events by support", s.filterEvents},
			{"Assign support to an event", s.assignSupport},
			{"Update an event", s.updateAnyEvent},
			{"Create a client for a salesperson", s.createClientForSales},
			{"Delete a client", s.deleteClient},
			{"List collaborators", s.listCollaborators},
		}
	case internal.RoleSales:
		items = []menuItem{
			{"Create a client", s.createClient},
			{"Update one of my clients", s.updateClient},
			{"Filter my contracts", s.filterMyContracts},
			{"Create an event for a client", s.createEvent},
		}
	case internal.RoleSupport:
		items = []menuItem{
			{"List my events", s.listMyEvents},
			{"Update one of my events", s.updateMyEvent},
		}
	default:
		return nil
	}

	return append(items,
		menuItem{"List clients", s.listClients},
		menuItem{"List contracts", s.listContracts},
		menuItem{"List events", s.listEvents},
		menuItem{"Edit my profile", s.editProfile},
	)
}

func (s *Session) listCollaborators(ctx context.Context) error {
	list, err := s.services.Collaborators.List(ctx, s.operator)
	if err != nil {
		return err
	}
	s.Presenter.ShowList("Collaborators", CollaboratorTable(list))
	return nil
}

func (s *Session) listClients(ctx context.Context) error {
	list, err := s.services.Clients.List(ctx, s.operator)
	if err != nil {
		return err
	}
	s.Presenter.ShowList("Clients", ClientTable(list))
	return nil
}

func (s *Session) listContracts(ctx context.Context) error {
	list, err := s.services.Contracts.List(ctx, s.operator)
	if err != nil {
		return err
	}
	s.Presenter.ShowList("Contracts", ContractTable(list))
	return nil
}

func (s *Session) listEvents(ctx context.Context) error {
	list, err := s.services.Events.List(ctx, s.operator)
	if err != nil {
		return err
	}
	s.Presenter.ShowList("Events", EventTable(list))
	return nil
}

func (s *Session) editProfile(ctx context.Context) error {
	values, err := s.Collect(ctx, "Edit my profile (leave blank to keep)", profileSchema(true))
	if err != nil {
		return err
	}

	updated, err := s.services.Collaborators.Modify(ctx, s.operator, s.operator.ID, updateCollaboratorDTO(values))
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Profile updated", collaboratorRecord(updated))
	return s.refreshOperator(ctx)
}
