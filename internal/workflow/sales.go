package workflow

import (
	"context"
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal/contract"
)

func (s *Session) createClient(ctx context.Context) error {
	values, err := s.Collect(ctx, "New client", clientSchema(false))
	if err != nil {
		return err
	}

	created, err := s.services.Clients.Create(ctx, s.operator, createClientDTO(values))
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Client created", clientRecord(created))
	return nil
}

func (s *Session) updateClient(ctx context.Context) error {
	owned, err := s.services.Clients.ListOwned(ctx, s.operator)
	if err != nil {
		return err
	}
	clientID, err := s.Choose("Client to update", "You have no clients yet.", clientRows(owned))
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "Update client (leave blank to keep)", clientSchema(true))
	if err != nil {
		return err
	}

	updated, err := s.services.Clients.Modify(ctx, s.operator, clientID, updateClientDTO(values))
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Client updated", clientRecord(updated))
	return nil
}

var contractFilters = []struct {
	label string
	tag   string
}{
	{"All my contracts", contract.FilterAll},
	{"Signed contracts", contract.FilterSigned},
	{"Contracts not signed yet", contract.FilterNotSigned},
}

func (s *Session) filterMyContracts(ctx context.Context) error {
	labels := make([]string, 0, len(contractFilters))
	for _, f := range contractFilters {
		labels = append(labels, f.label)
	}

	choice, err := s.Presenter.Menu("Which contracts?", labels)
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(contractFilters) {
		return fmt.Errorf("invalid contract filter choice %d", choice)
	}

	list, err := s.services.Contracts.ContractsFor(ctx, s.operator, s.operator.ID, contractFilters[choice].tag)
	if err != nil {
		return err
	}
	s.Presenter.ShowList(contractFilters[choice].label, ContractTable(list))
	return nil
}

func (s *Session) createEvent(ctx context.Context) error {
	signed, err := s.services.Contracts.ContractsFor(ctx, s.operator, s.operator.ID, contract.FilterSigned)
	if err != nil {
		return err
	}
	contractID, err := s.Choose("Signed contract", "None of your clients has a signed contract yet.", contractRows(signed))
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "New event", eventSchema(false))
	if err != nil {
		return err
	}
	dto, err := createEventDTO(contractID, values)
	if err != nil {
		return err
	}

	created, err := s.services.Events.CreateFromContract(ctx, s.operator, dto)
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Event created", eventRecord(created))
	return nil
}
