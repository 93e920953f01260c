package contract

import (
	"time"

	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	"github.com/shopspring/decimal"
)

const (
	StatusSigned    = "signed"
	StatusNotSigned = "not_signed"
)

type Contract struct {
	ID                  int64                               `gorm:"primaryKey"`
	ClientID            int64                               `gorm:"column:client_id;not null;index"`
	Client              *clientDatamodel.Client             `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CommercialContactID *int64                              `gorm:"column:commercial_contact_id;index"`
	CommercialContact   *collaboratorDatamodel.Collaborator `gorm:"foreignKey:CommercialContactID;constraint:OnDelete:SET NULL"`
	Value               decimal.Decimal                     `gorm:"column:value;type:decimal(12,2);not null"`
	Due                 decimal.Decimal                     `gorm:"column:due;type:decimal(12,2);not null"`
	CreationDate        time.Time                           `gorm:"column:creation_date;autoCreateTime"`
	Status              string                              `gorm:"column:status;size:10;not null;default:not_signed"`
}

func (Contract) TableName() string {
	return "contracts"
}
