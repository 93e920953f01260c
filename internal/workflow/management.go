package workflow

import (
	"context"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal/event"
)

func (s *Session) createCollaborator(ctx context.Context) error {
	values, err := s.Collect(ctx, "New collaborator", newCollaboratorSchema())
	if err != nil {
		return err
	}

	created, err := s.services.Collaborators.Create(ctx, s.operator, createCollaboratorDTO(values))
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Collaborator created", collaboratorRecord(created))
	return nil
}

func (s *Session) pickCollaborator(ctx context.Context, title string) (int64, error) {
	list, err := s.services.Collaborators.List(ctx, s.operator)
	if err != nil {
		return 0, err
	}
	return s.Choose(title, "There are no collaborators yet.", collaboratorRows(list))
}

func (s *Session) updateCollaborator(ctx context.Context) error {
	targetID, err := s.pickCollaborator(ctx, "Collaborator to update")
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "Update collaborator (leave blank to keep)", updateCollaboratorSchema())
	if err != nil {
		return err
	}

	updated, err := s.services.Collaborators.Modify(ctx, s.operator, targetID, updateCollaboratorDTO(values))
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Collaborator updated", collaboratorRecord(updated))
	if targetID == s.operator.ID {
		return s.refreshOperator(ctx)
	}
	return nil
}

func (s *Session) deleteCollaborator(ctx context.Context) error {
	targetID, err := s.pickCollaborator(ctx, "Collaborator to delete")
	if err != nil {
		return err
	}

	confirmed, err := s.Presenter.Confirm(fmt.Sprintf("Delete collaborator %d? Their clients, contracts and events will lose their contact.", targetID))
	if err != nil {
		return err
	}
	if err := s.services.Collaborators.Delete(ctx, s.operator, targetID, confirmed); err != nil {
		return err
	}
	s.Presenter.ShowMessage(MessageInfo, "Collaborator deleted.")
	if targetID == s.operator.ID {
		s.endSession(ctx, "Your account was deleted. The session has ended.")
	}
	return nil
}

func (s *Session) createClientForSales(ctx context.Context) error {
	salespeople, err := s.services.Collaborators.ListSales(ctx, s.operator)
	if err != nil {
		return err
	}
	ownerID, err := s.Choose("Commercial contact of the client", "There are no sales collaborators yet.", collaboratorRows(salespeople))
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "New client", clientSchema(false))
	if err != nil {
		return err
	}
	dto := createClientDTO(values)
	dto.CommercialContactID = &ownerID

	created, err := s.services.Clients.Create(ctx, s.operator, dto)
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Client created", clientRecord(created))
	return nil
}

func (s *Session) createContract(ctx context.Context) error {
	clients, err := s.services.Clients.List(ctx, s.operator)
	if err != nil {
		return err
	}
	clientID, err := s.Choose("Client of the contract", "There are no clients yet.", clientRows(clients))
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "New contract", contractSchema(false))
	if err != nil {
		return err
	}
	dto, err := createContractDTO(clientID, values)
	if err != nil {
		return err
	}

	created, err := s.services.Contracts.Create(ctx, s.operator, dto)
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Contract created", contractRecord(created))
	return nil
}

func (s *Session) updateContract(ctx context.Context) error {
	contracts, err := s.services.Contracts.List(ctx, s.operator)
	if err != nil {
		return err
	}
	contractID, err := s.Choose("Contract to update", "There are no contracts yet.", contractRows(contracts))
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "Update contract (leave blank to keep)", contractSchema(true))
	if err != nil {
		return err
	}
	dto, err := updateContractDTO(values)
	if err != nil {
		return err
	}

	updated, err := s.services.Contracts.Modify(ctx, s.operator, contractID, dto)
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Contract updated", contractRecord(updated))
	return nil
}

var supportFilterLabels = []string{"All events", "Events with support", "Events without support"}

func (s *Session) eventsBySupport(ctx context.Context) ([]*event.Event, error) {
	choice, err := s.Presenter.Menu("Which events?", supportFilterLabels)
	if err != nil {
		return nil, err
	}
	if choice < 0 || choice >= len(event.SupportStates) {
		return nil, fmt.Errorf("invalid support filter choice %d", choice)
	}
	return s.services.Events.ListBySupportState(ctx, s.operator, event.SupportStates[choice])
}

func (s *Session) filterEvents(ctx context.Context) error {
	list, err := s.eventsBySupport(ctx)
	if err != nil {
		return err
	}
	s.Presenter.ShowList("Events", EventTable(list))
	return nil
}

func (s *Session) assignSupport(ctx context.Context) error {
	list, err := s.eventsBySupport(ctx)
	if err != nil {
		return err
	}
	eventID, err := s.Choose("Event to staff", "No event matches this filter.", eventRows(list))
	if err != nil {
		return err
	}

	supports, err := s.services.Collaborators.ListSupport(ctx, s.operator)
	if err != nil {
		return err
	}
	supportID, err := s.Choose("Support collaborator", "There are no support collaborators yet.", collaboratorRows(supports))
	if err != nil {
		return err
	}

	updated, err := s.services.Events.AssignSupport(ctx, s.operator, eventID, supportID)
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Support assigned", eventRecord(updated))
	return nil
}

func (s *Session) updateAnyEvent(ctx context.Context) error {
	list, err := s.services.Events.List(ctx, s.operator)
	if err != nil {
		return err
	}
	return s.updateEventFrom(ctx, list)
}

func (s *Session) deleteClient(ctx context.Context) error {
	clients, err := s.services.Clients.List(ctx, s.operator)
	if err != nil {
		return err
	}
	clientID, err := s.Choose("Client to delete", "There are no clients yet.", clientRows(clients))
	if err != nil {
		return err
	}

	confirmed, err := s.Presenter.Confirm(fmt.Sprintf("Delete client %d with all its contracts and events?", clientID))
	if err != nil {
		return err
	}
	if err := s.services.Clients.Delete(ctx, s.operator, clientID, confirmed); err != nil {
		return err
	}
	s.Presenter.ShowMessage(MessageInfo, "Client deleted.")
	return nil
}
