package event

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/common/validation"
)

const (
	NameMaxLength          = 255
	ClientContactMaxLength = 100
	LocationMaxLength      = 100
)

type CreateEventDTO struct {
	ContractID    int64
	Name          string
	ClientContact string
	DayStart      time.Time
	DateEnd       time.Time
	Location      string
	Attendees     int
	Notes         string
}

func (d *CreateEventDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.ClientContact = strings.TrimSpace(d.ClientContact)
	d.Location = strings.TrimSpace(d.Location)
	d.Notes = strings.TrimSpace(d.Notes)
	d.DayStart = DateOnly(d.DayStart)
	d.DateEnd = DateOnly(d.DateEnd)
}

func (d CreateEventDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	validator.Field("name", d.Name).Required().MaxLength(NameMaxLength)
	validator.Field("client_contact", d.ClientContact).Required().MaxLength(ClientContactMaxLength)
	validator.Field("day_start", d.DayStart).Required()
	validator.Field("date_end", d.DateEnd).Required().NotBefore(d.DayStart, "day_start")
	validator.Field("location", d.Location).Required().MaxLength(LocationMaxLength)
	validator.Field("attendees", d.Attendees).Positive()

	return validator.Validate()
}

type UpdateEventDTO struct {
	Name          *string
	ClientContact *string
	DayStart      *time.Time
	DateEnd       *time.Time
	Location      *string
	Attendees     *int
	Notes         *string
}

func (d *UpdateEventDTO) Normalize() {
	d.Name = validation.NilIfBlank(d.Name)
	d.ClientContact = validation.NilIfBlank(d.ClientContact)
	d.Location = validation.NilIfBlank(d.Location)
	d.Notes = validation.NilIfBlank(d.Notes)
	if d.DayStart != nil {
		start := DateOnly(*d.DayStart)
		d.DayStart = &start
	}
	if d.DateEnd != nil {
		end := DateOnly(*d.DateEnd)
		d.DateEnd = &end
	}
}

func (d UpdateEventDTO) IsEmpty() bool {
	return d.Name == nil && d.ClientContact == nil && d.DayStart == nil && d.DateEnd == nil &&
		d.Location == nil && d.Attendees == nil && d.Notes == nil
}

// Validate checks the delta against the dates it would leave on current.
func (d UpdateEventDTO) Validate(current *Event) *errors.AppError {
	validator := validation.NewValidator()

	start, end := current.DayStart, current.DateEnd
	if d.DayStart != nil {
		start = *d.DayStart
	}
	if d.DateEnd != nil {
		end = *d.DateEnd
	}

	if d.Name != nil {
		validator.Field("name", *d.Name).MaxLength(NameMaxLength)
	}
	if d.ClientContact != nil {
		validator.Field("client_contact", *d.ClientContact).MaxLength(ClientContactMaxLength)
	}
	if d.DayStart != nil || d.DateEnd != nil {
		validator.Field("date_end", end).NotBefore(start, "day_start")
	}
	if d.Location != nil {
		validator.Field("location", *d.Location).MaxLength(LocationMaxLength)
	}
	if d.Attendees != nil {
		validator.Field("attendees", *d.Attendees).Positive()
	}

	return validator.Validate()
}

func (d UpdateEventDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.ClientContact != nil {
		fields["client_contact"] = *d.ClientContact
	}
	if d.DayStart != nil {
		fields["day_start"] = *d.DayStart
	}
	if d.DateEnd != nil {
		fields["date_end"] = *d.DateEnd
	}
	if d.Location != nil {
		fields["location"] = *d.Location
	}
	if d.Attendees != nil {
		fields["attendees"] = *d.Attendees
	}
	if d.Notes != nil {
		fields["notes"] = *d.Notes
	}
	return fields
}
