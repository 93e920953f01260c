package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/client"
	"github.com/frahmantamala/epic-events-crm/internal/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	"github.com/frahmantamala/epic-events-crm/internal/event"
	"github.com/shopspring/decimal"
)

func profileSchema(optional bool) []Field {
	return []Field{
		{Name: "first_name", Label: "First name", Type: FieldText, MaxLength: collaborator.NameMaxLength, Optional: optional},
		{Name: "last_name", Label: "Last name", Type: FieldText, MaxLength: collaborator.NameMaxLength, Optional: optional},
		{Name: "username", Label: "Username", Type: FieldText, MaxLength: collaborator.UsernameMaxLength, Optional: optional},
		{Name: "email", Label: "Email", Type: FieldEmail, Optional: optional},
	}
}

func newCollaboratorSchema() []Field {
	return append(profileSchema(false),
		Field{Name: "employee_number", Label: "Employee number", Type: FieldText, MaxLength: collaborator.EmployeeNumberMaxLength},
		Field{Name: "password", Label: "Password", Type: FieldPassword},
		Field{Name: "role", Label: "Role", Type: FieldChoice, Choices: internal.Roles},
	)
}

func updateCollaboratorSchema() []Field {
	return append(profileSchema(true),
		Field{Name: "employee_number", Label: "Employee number", Type: FieldText, MaxLength: collaborator.EmployeeNumberMaxLength, Optional: true},
		Field{Name: "role", Label: "Role", Type: FieldChoice, Choices: internal.Roles, Optional: true},
	)
}

func clientSchema(optional bool) []Field {
	return []Field{
		{Name: "name", Label: "Full name", Type: FieldText, MaxLength: client.NameMaxLength, Optional: optional},
		{Name: "email", Label: "Email", Type: FieldEmail, Optional: optional},
		{Name: "phone", Label: "Phone", Type: FieldText, MaxLength: client.PhoneMaxLength, Optional: optional},
		{Name: "company_name", Label: "Company", Type: FieldText, MaxLength: client.CompanyMaxLength, Optional: optional},
	}
}

func contractSchema(optional bool) []Field {
	return []Field{
		{Name: "value", Label: "Total amount", Type: FieldDecimal, Optional: optional},
		{Name: "due", Label: "Amount due", Type: FieldDecimal, Optional: optional},
		{Name: "status", Label: "Status", Type: FieldChoice, Choices: contract.Statuses, Optional: optional},
	}
}

func eventSchema(optional bool) []Field {
	return []Field{
		{Name: "name", Label: "Event name", Type: FieldText, MaxLength: event.NameMaxLength, Optional: optional},
		{Name: "client_contact", Label: "Client contact", Type: FieldText, MaxLength: event.ClientContactMaxLength, Optional: optional},
		{Name: "day_start", Label: "Start date (YYYY-MM-DD)", Type: FieldDate, Optional: optional},
		{Name: "date_end", Label: "End date (YYYY-MM-DD)", Type: FieldDate, Optional: optional},
		{Name: "location", Label: "Location", Type: FieldText, MaxLength: event.LocationMaxLength, Optional: optional},
		{Name: "attendees", Label: "Attendees", Type: FieldPositiveInt, Optional: optional},
		{Name: "notes", Label: "Notes", Type: FieldText, Optional: true},
	}
}

func (v FieldValues) Text(name string) string {
	return strings.TrimSpace(v[name])
}

// Optional is nil when the field was left blank.
func (v FieldValues) Optional(name string) *string {
	text := v.Text(name)
	if text == "" {
		return nil
	}
	return &text
}

func (v FieldValues) Decimal(name string) (*decimal.Decimal, error) {
	text := v.Text(name)
	if text == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, internal.NewValidationFieldError(name,
			fmt.Sprintf("%s must be a positive decimal number (e.g. 9999.99)", name), internal.ErrCodeInvalidAmount)
	}
	return &d, nil
}

func (v FieldValues) Date(name string) (*time.Time, error) {
	text := v.Text(name)
	if text == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return nil, internal.NewValidationFieldError(name,
			fmt.Sprintf("%s must be a date formatted as YYYY-MM-DD", name), internal.ErrCodeInvalidDate)
	}
	return &t, nil
}

func (v FieldValues) Int(name string) (*int, error) {
	text := v.Text(name)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, internal.NewValidationFieldError(name,
			fmt.Sprintf("%s must be a whole number", name), internal.ErrCodeInvalidAttendees)
	}
	return &n, nil
}

func createCollaboratorDTO(v FieldValues) collaborator.CreateCollaboratorDTO {
	return collaborator.CreateCollaboratorDTO{
		FirstName:      v.Text("first_name"),
		LastName:       v.Text("last_name"),
		Username:       v.Text("username"),
		Email:          v.Text("email"),
		EmployeeNumber: v.Text("employee_number"),
		Password:       v["password"],
		Role:           v.Text("role"),
	}
}

func updateCollaboratorDTO(v FieldValues) collaborator.UpdateCollaboratorDTO {
	return collaborator.UpdateCollaboratorDTO{
		FirstName:      v.Optional("first_name"),
		LastName:       v.Optional("last_name"),
		Username:       v.Optional("username"),
		Email:          v.Optional("email"),
		EmployeeNumber: v.Optional("employee_number"),
		Role:           v.Optional("role"),
	}
}

func createClientDTO(v FieldValues) client.CreateClientDTO {
	return client.CreateClientDTO{
		Name:        v.Text("name"),
		Email:       v.Text("email"),
		Phone:       v.Text("phone"),
		CompanyName: v.Text("company_name"),
	}
}

func updateClientDTO(v FieldValues) client.UpdateClientDTO {
	return client.UpdateClientDTO{
		Name:        v.Optional("name"),
		Email:       v.Optional("email"),
		Phone:       v.Optional("phone"),
		CompanyName: v.Optional("company_name"),
	}
}

func createContractDTO(clientID int64, v FieldValues) (contract.CreateContractDTO, error) {
	dto := contract.CreateContractDTO{ClientID: clientID, Status: v.Text("status")}

	value, err := v.Decimal("value")
	if err != nil {
		return dto, err
	}
	due, err := v.Decimal("due")
	if err != nil {
		return dto, err
	}
	if value != nil {
		dto.Value = *value
	}
	if due != nil {
		dto.Due = *due
	}
	return dto, nil
}

func updateContractDTO(v FieldValues) (contract.UpdateContractDTO, error) {
	dto := contract.UpdateContractDTO{Status: v.Optional("status")}

	var err error
	if dto.Value, err = v.Decimal("value"); err != nil {
		return dto, err
	}
	if dto.Due, err = v.Decimal("due"); err != nil {
		return dto, err
	}
	return dto, nil
}

func createEventDTO(contractID int64, v FieldValues) (event.CreateEventDTO, error) {
	dto := event.CreateEventDTO{
		ContractID:    contractID,
		Name:          v.Text("name"),
		ClientContact: v.Text("client_contact"),
		Location:      v.Text("location"),
		Notes:         v.Text("notes"),
	}

	start, err := v.Date("day_start")
	if err != nil {
		return dto, err
	}
	end, err := v.Date("date_end")
	if err != nil {
		return dto, err
	}
	attendees, err := v.Int("attendees")
	if err != nil {
		return dto, err
	}

	if start != nil {
		dto.DayStart = *start
	}
	if end != nil {
		dto.DateEnd = *end
	}
	if attendees != nil {
		dto.Attendees = *attendees
	}
	return dto, nil
}

func updateEventDTO(v FieldValues) (event.UpdateEventDTO, error) {
	dto := event.UpdateEventDTO{
		Name:          v.Optional("name"),
		ClientContact: v.Optional("client_contact"),
		Location:      v.Optional("location"),
		Notes:         v.Optional("notes"),
	}

	var err error
	if dto.DayStart, err = v.Date("day_start"); err != nil {
		return dto, err
	}
	if dto.DateEnd, err = v.Date("date_end"); err != nil {
		return dto, err
	}
	if dto.Attendees, err = v.Int("attendees"); err != nil {
		return dto, err
	}
	return dto, nil
}
