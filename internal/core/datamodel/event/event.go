package event

import (
	"time"

	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
)

type Event struct {
	ID               int64                               `gorm:"primaryKey"`
	ContractID       *int64                              `gorm:"column:contract_id;index"`
	Contract         *contractDatamodel.Contract         `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
	ClientID         int64                               `gorm:"column:client_id;not null;index"`
	Client           *clientDatamodel.Client             `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	ClientName       string                              `gorm:"column:client_name;size:100;not null"`
	ClientContact    string                              `gorm:"column:client_contact;size:100;not null"`
	Name             string                              `gorm:"column:name;size:255"`
	DayStart         time.Time                           `gorm:"column:day_start;type:date;not null"`
	DateEnd          time.Time                           `gorm:"column:date_end;type:date;not null"`
	Location         string                              `gorm:"column:location;size:100;not null"`
	Attendees        int                                 `gorm:"column:attendees;not null"`
	Notes            string                              `gorm:"column:notes;type:text"`
	SupportContactID *int64                              `gorm:"column:support_contact_id;index"`
	SupportContact   *collaboratorDatamodel.Collaborator `gorm:"foreignKey:SupportContactID;constraint:OnDelete:SET NULL"`
}

func (Event) TableName() string {
	return "events"
}
