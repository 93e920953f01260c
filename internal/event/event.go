package event

import (
	"time"

	eventDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/event"
)

// Support states accepted by ListBySupportState.
const (
	SupportAll        = "all"
	SupportAssigned   = "with"
	SupportUnassigned = "without"
)

var SupportStates = []string{SupportAll, SupportAssigned, SupportUnassigned}

type Event struct {
	ID                 int64
	ContractID         *int64
	ClientID           int64
	ClientName         string
	ClientContact      string
	Name               string
	DayStart           time.Time
	DateEnd            time.Time
	Location           string
	Attendees          int
	Notes              string
	SupportContactID   *int64
	SupportContactName string
}

func (e *Event) HasSupport() bool {
	return e.SupportContactID != nil
}

func FromDataModel(e *eventDatamodel.Event) *Event {
	out := &Event{
		ID:               e.ID,
		ContractID:       e.ContractID,
		ClientID:         e.ClientID,
		ClientName:       e.ClientName,
		ClientContact:    e.ClientContact,
		Name:             e.Name,
		DayStart:         e.DayStart,
		DateEnd:          e.DateEnd,
		Location:         e.Location,
		Attendees:        e.Attendees,
		Notes:            e.Notes,
		SupportContactID: e.SupportContactID,
	}
	if e.SupportContact != nil {
		out.SupportContactName = e.SupportContact.Username
	}
	return out
}

func FromDataModels(list []*eventDatamodel.Event) []*Event {
	out := make([]*Event, 0, len(list))
	for _, e := range list {
		out = append(out, FromDataModel(e))
	}
	return out
}

func ToDataModel(e *Event) *eventDatamodel.Event {
	return &eventDatamodel.Event{
		ID:               e.ID,
		ContractID:       e.ContractID,
		ClientID:         e.ClientID,
		ClientName:       e.ClientName,
		ClientContact:    e.ClientContact,
		Name:             e.Name,
		DayStart:         e.DayStart,
		DateEnd:          e.DateEnd,
		Location:         e.Location,
		Attendees:        e.Attendees,
		Notes:            e.Notes,
		SupportContactID: e.SupportContactID,
	}
}

// DateOnly drops the clock part; events are scheduled by day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
