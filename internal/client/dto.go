package client

import (
	"strings"

	errors "github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/common/validation"
)

const (
	NameMaxLength    = 100
	PhoneMaxLength   = 20
	CompanyMaxLength = 100
)

type CreateClientDTO struct {
	Name        string
	Email       string
	Phone       string
	CompanyName string

	// CommercialContactID is only honoured for operators outside the sales role.
	CommercialContactID *int64
}

func (d *CreateClientDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.CompanyName = strings.TrimSpace(d.CompanyName)
}

func (d CreateClientDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	validator.Field("name", d.Name).Required().MaxLength(NameMaxLength)
	validator.Field("email", d.Email).Required().Email()
	validator.Field("phone", d.Phone).Required().MaxLength(PhoneMaxLength)
	validator.Field("company_name", d.CompanyName).Required().MaxLength(CompanyMaxLength)

	return validator.Validate()
}

type UpdateClientDTO struct {
	Name        *string
	Email       *string
	Phone       *string
	CompanyName *string
}

func (d *UpdateClientDTO) Normalize() {
	d.Name = validation.NilIfBlank(d.Name)
	d.Email = validation.NilIfBlank(d.Email)
	d.Phone = validation.NilIfBlank(d.Phone)
	d.CompanyName = validation.NilIfBlank(d.CompanyName)
}

func (d UpdateClientDTO) IsEmpty() bool {
	return d.Name == nil && d.Email == nil && d.Phone == nil && d.CompanyName == nil
}

func (d UpdateClientDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	if d.Name != nil {
		validator.Field("name", *d.Name).MaxLength(NameMaxLength)
	}
	if d.Email != nil {
		validator.Field("email", *d.Email).Email()
	}
	if d.Phone != nil {
		validator.Field("phone", *d.Phone).MaxLength(PhoneMaxLength)
	}
	if d.CompanyName != nil {
		validator.Field("company_name", *d.CompanyName).MaxLength(CompanyMaxLength)
	}

	return validator.Validate()
}

func (d UpdateClientDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Email != nil {
		fields["email"] = *d.Email
	}
	if d.Phone != nil {
		fields["phone"] = *d.Phone
	}
	if d.CompanyName != nil {
		fields["company_name"] = *d.CompanyName
	}
	return fields
}
