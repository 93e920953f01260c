package collaborator

import (
	"strings"

	errors "github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/common/validation"
)

const (
	NameMaxLength           = 50
	UsernameMaxLength       = 50
	EmployeeNumberMaxLength = 50
)

type CreateCollaboratorDTO struct {
	FirstName      string
	LastName       string
	Username       string
	Email          string
	EmployeeNumber string
	Password       string
	Role           string
}

func (d *CreateCollaboratorDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.TrimSpace(d.Email)
	d.EmployeeNumber = strings.TrimSpace(d.EmployeeNumber)
	d.Role = strings.ToLower(strings.TrimSpace(d.Role))
}

func (d CreateCollaboratorDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	validator.Field("first_name", d.FirstName).Required().MaxLength(NameMaxLength)
	validator.Field("last_name", d.LastName).Required().MaxLength(NameMaxLength)
	validator.Field("username", d.Username).Required().MaxLength(UsernameMaxLength)
	validator.Field("email", d.Email).Required().Email()
	validator.Field("employee_number", d.EmployeeNumber).Required().MaxLength(EmployeeNumberMaxLength)
	validator.Field("password", d.Password).Required().Custom(passwordRule)
	validator.Field("role", d.Role).Required().OneOf(errors.ErrCodeInvalidRole, errors.Roles...)

	return validator.Validate()
}

// UpdateCollaboratorDTO is a partial update, nil fields are left unchanged.
type UpdateCollaboratorDTO struct {
	FirstName      *string
	LastName       *string
	Username       *string
	Email          *string
	EmployeeNumber *string
	Role           *string
}

func (d *UpdateCollaboratorDTO) Normalize() {
	d.FirstName = validation.NilIfBlank(d.FirstName)
	d.LastName = validation.NilIfBlank(d.LastName)
	d.Username = validation.NilIfBlank(d.Username)
	d.Email = validation.NilIfBlank(d.Email)
	d.EmployeeNumber = validation.NilIfBlank(d.EmployeeNumber)
	d.Role = validation.NilIfBlank(d.Role)
	if d.Role != nil {
		role := strings.ToLower(*d.Role)
		d.Role = &role
	}
}

func (d UpdateCollaboratorDTO) IsEmpty() bool {
	return d.FirstName == nil && d.LastName == nil && d.Username == nil &&
		d.Email == nil && d.EmployeeNumber == nil && d.Role == nil
}

func (d UpdateCollaboratorDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	if d.FirstName != nil {
		validator.Field("first_name", *d.FirstName).MaxLength(NameMaxLength)
	}
	if d.LastName != nil {
		validator.Field("last_name", *d.LastName).MaxLength(NameMaxLength)
	}
	if d.Username != nil {
		validator.Field("username", *d.Username).MaxLength(UsernameMaxLength)
	}
	if d.Email != nil {
		validator.Field("email", *d.Email).Email()
	}
	if d.EmployeeNumber != nil {
		validator.Field("employee_number", *d.EmployeeNumber).MaxLength(EmployeeNumberMaxLength)
	}
	if d.Role != nil {
		validator.Field("role", *d.Role).OneOf(errors.ErrCodeInvalidRole, errors.Roles...)
	}

	return validator.Validate()
}

// Fields returns the column updates, without the role which is handled separately.
func (d UpdateCollaboratorDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.FirstName != nil {
		fields["first_name"] = *d.FirstName
	}
	if d.LastName != nil {
		fields["last_name"] = *d.LastName
	}
	if d.Username != nil {
		fields["username"] = *d.Username
	}
	if d.Email != nil {
		fields["email"] = *d.Email
	}
	if d.EmployeeNumber != nil {
		fields["employee_number"] = *d.EmployeeNumber
	}
	return fields
}

func passwordRule(value interface{}) *errors.AppError {
	if problem := validation.PasswordProblem(value.(string)); problem != "" {
		return errors.NewValidationFieldError("password", problem, errors.ErrCodeValidationFailed)
	}
	return nil
}
