package client

import (
	"time"

	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
)

type Client struct {
	ID                    int64
	Name                  string
	Email                 string
	Phone                 string
	CompanyName           string
	CreationDate          time.Time
	LastUpdate            time.Time
	CommercialContactID   *int64
	CommercialContactName string
}

func FromDataModel(c *clientDatamodel.Client) *Client {
	out := &Client{
		ID:                  c.ID,
		Name:                c.Name,
		Email:               c.Email,
		Phone:               c.Phone,
		CompanyName:         c.CompanyName,
		CreationDate:        c.CreationDate,
		LastUpdate:          c.LastUpdate,
		CommercialContactID: c.CommercialContactID,
	}
	if c.CommercialContact != nil {
		out.CommercialContactName = c.CommercialContact.Username
	}
	return out
}

func FromDataModels(list []*clientDatamodel.Client) []*Client {
	out := make([]*Client, 0, len(list))
	for _, c := range list {
		out = append(out, FromDataModel(c))
	}
	return out
}

func ToDataModel(c *Client) *clientDatamodel.Client {
	return &clientDatamodel.Client{
		ID:                  c.ID,
		Name:                c.Name,
		Email:               c.Email,
		Phone:               c.Phone,
		CompanyName:         c.CompanyName,
		CreationDate:        c.CreationDate,
		LastUpdate:          c.LastUpdate,
		CommercialContactID: c.CommercialContactID,
	}
}
