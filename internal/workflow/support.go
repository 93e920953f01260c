package workflow

import (
	"context"

	"github.com/frahmantamala/epic-events-crm/internal/event"
)

func (s *Session) listMyEvents(ctx context.Context) error {
	mine, err := s.services.Events.EventsForSupport(ctx, s.operator)
	if err != nil {
		return err
	}
	s.Presenter.ShowList("My events", EventTable(mine))
	return nil
}

func (s *Session) updateMyEvent(ctx context.Context) error {
	mine, err := s.services.Events.EventsForSupport(ctx, s.operator)
	if err != nil {
		return err
	}
	return s.updateEventFrom(ctx, mine)
}

func (s *Session) updateEventFrom(ctx context.Context, list []*event.Event) error {
	eventID, err := s.Choose("Event to update", "There are no events to update.", eventRows(list))
	if err != nil {
		return err
	}

	values, err := s.Collect(ctx, "Update event (leave blank to keep)", eventSchema(true))
	if err != nil {
		return err
	}
	dto, err := updateEventDTO(values)
	if err != nil {
		return err
	}

	updated, err := s.services.Events.Modify(ctx, s.operator, eventID, dto)
	if err != nil {
		return err
	}
	s.Presenter.ShowRecord("Event updated", eventRecord(updated))
	return nil
}
