package collaborator

import (
	"strings"
	"time"

	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
)

type Collaborator struct {
	ID             int64
	FirstName      string
	LastName       string
	Username       string
	Email          string
	EmployeeNumber string
	Role           string
	Groups         []string
	IsActive       bool
	IsSuperuser    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Collaborator) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// RoleChange names the role and the single group membership that replaces
// every existing one.
type RoleChange struct {
	RoleName  string
	GroupName string
}

func FromDataModel(c *collaboratorDatamodel.Collaborator) *Collaborator {
	groups := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, g.Name)
	}
	return &Collaborator{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Username:       c.Username,
		Email:          c.Email,
		EmployeeNumber: c.EmployeeNumber,
		Role:           c.RoleName(),
		Groups:         groups,
		IsActive:       c.IsActive,
		IsSuperuser:    c.IsSuperuser,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func FromDataModels(list []*collaboratorDatamodel.Collaborator) []*Collaborator {
	out := make([]*Collaborator, 0, len(list))
	for _, c := range list {
		out = append(out, FromDataModel(c))
	}
	return out
}

// ToDataModel leaves Role and Groups to the repository, which resolves them by name.
func ToDataModel(c *Collaborator, passwordHash string) *collaboratorDatamodel.Collaborator {
	return &collaboratorDatamodel.Collaborator{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Username:       c.Username,
		Email:          c.Email,
		EmployeeNumber: c.EmployeeNumber,
		PasswordHash:   passwordHash,
		IsActive:       true,
		IsSuperuser:    c.IsSuperuser,
	}
}
