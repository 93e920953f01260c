package auth

import (
	"context"
	"strings"

	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
)

const (
	CapViewCollaborator    = "view_collaborator"
	CapManageCollaborators = "manage_collaborators"
	CapViewClient          = "view_client"
	CapAddClient           = "add_client"
	CapChangeClient        = "change_client"
	CapDeleteClient        = "delete_client"
	CapViewContract        = "view_contract"
	CapManageContracts     = "manage_contracts_creation_modification"
	CapViewEvent           = "view_event"
	CapAddEvent            = "add_event"
	CapChangeEvent         = "change_event"
	CapAssignEventSupport  = "assign_event_support"
)

// Identity is the authenticated operator of a session.
type Identity struct {
	ID          int64
	Username    string
	FullName    string
	Role        string
	Groups      []string
	IsSuperuser bool
}

func (i *Identity) HasRole(role string) bool {
	return i != nil && i.Role == role
}

func (i *Identity) String() string {
	if i == nil {
		return "anonymous"
	}
	if i.Role == "" {
		return i.Username
	}
	return i.Username + " (" + i.Role + ")"
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*Identity, error)
	Resolve(ctx context.Context, collaboratorID int64) (*Identity, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetByUsername(ctx context.Context, username string) (*collaboratorDatamodel.Collaborator, error)
	GetByID(ctx context.Context, id int64) (*collaboratorDatamodel.Collaborator, error)
}

// IdentityFromDataModel expects Role and Groups to be preloaded.
func IdentityFromDataModel(c *collaboratorDatamodel.Collaborator) *Identity {
	if c == nil {
		return nil
	}
	groups := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, g.Name)
	}
	return &Identity{
		ID:          c.ID,
		Username:    c.Username,
		FullName:    strings.TrimSpace(c.FirstName + " " + c.LastName),
		Role:        c.RoleName(),
		Groups:      groups,
		IsSuperuser: c.IsSuperuser,
	}
}
