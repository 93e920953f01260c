package contract

import (
	errors "github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// Amounts are stored as decimal(12,2).
const (
	AmountDigits = 12
	AmountPlaces = 2
)

type CreateContractDTO struct {
	ClientID int64
	Value    decimal.Decimal
	Due      decimal.Decimal
	Status   string
}

func (d CreateContractDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	validator.Field("client", d.ClientID).Required()
	validator.Field("value", d.Value).NonNegative().Precision(AmountDigits, AmountPlaces)
	validator.Field("due", d.Due).NonNegative().Precision(AmountDigits, AmountPlaces)
	validator.Field("status", d.Status).Required().OneOf(errors.ErrCodeInvalidStatus, Statuses...)

	return validator.Validate()
}

type UpdateContractDTO struct {
	Value  *decimal.Decimal
	Due    *decimal.Decimal
	Status *string
}

func (d *UpdateContractDTO) Normalize() {
	d.Status = validation.NilIfBlank(d.Status)
}

func (d UpdateContractDTO) IsEmpty() bool {
	return d.Value == nil && d.Due == nil && d.Status == nil
}

func (d UpdateContractDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	if d.Value != nil {
		validator.Field("value", *d.Value).NonNegative().Precision(AmountDigits, AmountPlaces)
	}
	if d.Due != nil {
		validator.Field("due", *d.Due).NonNegative().Precision(AmountDigits, AmountPlaces)
	}
	if d.Status != nil {
		validator.Field("status", *d.Status).OneOf(errors.ErrCodeInvalidStatus, Statuses...)
	}

	return validator.Validate()
}

func (d UpdateContractDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Value != nil {
		fields["value"] = *d.Value
	}
	if d.Due != nil {
		fields["due"] = *d.Due
	}
	if d.Status != nil {
		fields["status"] = *d.Status
	}
	return fields
}
