package client

import (
	"time"

	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
)

type Client struct {
	ID                  int64                               `gorm:"primaryKey"`
	Name                string                              `gorm:"column:name;size:100;not null"`
	Email               string                              `gorm:"column:email;size:254;not null"`
	Phone               string                              `gorm:"column:phone;size:20;not null"`
	CompanyName         string                              `gorm:"column:company_name;size:100;not null"`
	CreationDate        time.Time                           `gorm:"column:creation_date;autoCreateTime"`
	LastUpdate          time.Time                           `gorm:"column:last_update;autoUpdateTime"`
	CommercialContactID *int64                              `gorm:"column:commercial_contact_id;index"`
	CommercialContact   *collaboratorDatamodel.Collaborator `gorm:"foreignKey:CommercialContactID;constraint:OnDelete:SET NULL"`
}

func (Client) TableName() string {
	return "clients"
}
