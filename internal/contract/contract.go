package contract

import (
	"time"

	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	"github.com/shopspring/decimal"
)

const (
	StatusSigned    = contractDatamodel.StatusSigned
	StatusNotSigned = contractDatamodel.StatusNotSigned
)

var Statuses = []string{StatusSigned, StatusNotSigned}

type Contract struct {
	ID                    int64
	ClientID              int64
	ClientName            string
	ClientOwnerID         *int64
	CommercialContactID   *int64
	CommercialContactName string
	Value                 decimal.Decimal
	Due                   decimal.Decimal
	CreationDate          time.Time
	Status                string
}

func (c *Contract) IsSigned() bool {
	return c.Status == StatusSigned
}

// IsFullyPaid is true once nothing remains due.
func (c *Contract) IsFullyPaid() bool {
	return !c.Due.IsPositive()
}

func FromDataModel(c *contractDatamodel.Contract) *Contract {
	out := &Contract{
		ID:                  c.ID,
		ClientID:            c.ClientID,
		CommercialContactID: c.CommercialContactID,
		Value:               c.Value,
		Due:                 c.Due,
		CreationDate:        c.CreationDate,
		Status:              c.Status,
	}
	if c.Client != nil {
		out.ClientName = c.Client.Name
		out.ClientOwnerID = c.Client.CommercialContactID
	}
	if c.CommercialContact != nil {
		out.CommercialContactName = c.CommercialContact.Username
	}
	return out
}

func FromDataModels(list []*contractDatamodel.Contract) []*Contract {
	out := make([]*Contract, 0, len(list))
	for _, c := range list {
		out = append(out, FromDataModel(c))
	}
	return out
}

func ToDataModel(c *Contract) *contractDatamodel.Contract {
	return &contractDatamodel.Contract{
		ID:                  c.ID,
		ClientID:            c.ClientID,
		CommercialContactID: c.CommercialContactID,
		Value:               c.Value,
		Due:                 c.Due,
		CreationDate:        c.CreationDate,
		Status:              c.Status,
	}
}
