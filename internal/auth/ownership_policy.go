package auth

import "github.com/frahmantamala/epic-events-crm/internal"

// OwnershipAction names a change gated on who a record belongs to, on top of
// the capability the operator already holds.
type OwnershipAction string

const (
	ActionModifyClient OwnershipAction = "modify_client"
	ActionCreateEvent  OwnershipAction = "create_event"
	ActionEditEvent    OwnershipAction = "edit_event"
)

// OwnershipPolicy is a small attribute-based check over the operator's role
// and the collaborator a record is attached to.
type OwnershipPolicy struct{}

// Allow reports whether operator may perform action on a record attached to
// ownerID. A nil ownerID belongs to nobody.
func (p *OwnershipPolicy) Allow(operator *Identity, ownerID *int64, action OwnershipAction) bool {
	if operator == nil {
		return false
	}
	if operator.IsSuperuser {
		return true
	}

	owns := ownerID != nil && *ownerID == operator.ID
	switch action {
	case ActionModifyClient:
		// sales edit their own portfolio, management edits any client
		return owns || !operator.HasRole(internal.RoleSales)
	case ActionCreateEvent:
		return owns
	case ActionEditEvent:
		return owns || !operator.HasRole(internal.RoleSupport)
	}
	return false
}

// CanModifyClient checks the client's commercial contact.
func (p *OwnershipPolicy) CanModifyClient(operator *Identity, commercialContactID *int64) bool {
	return p.Allow(operator, commercialContactID, ActionModifyClient)
}

// CanCreateEvent checks the commercial contact of the contract's client.
func (p *OwnershipPolicy) CanCreateEvent(operator *Identity, clientContactID *int64) bool {
	return p.Allow(operator, clientContactID, ActionCreateEvent)
}

// CanEditEvent checks the event's support contact.
func (p *OwnershipPolicy) CanEditEvent(operator *Identity, supportContactID *int64) bool {
	return p.Allow(operator, supportContactID, ActionEditEvent)
}
