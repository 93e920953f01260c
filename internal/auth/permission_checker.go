package auth

import (
	"sort"

	"github.com/frahmantamala/epic-events-crm/internal"
)

// Oracle answers capability questions for an identity.
type Oracle interface {
	HasCapability(identity *Identity, capability string) bool
}

// PermissionChecker resolves identity -> groups -> capabilities from a static table.
type PermissionChecker struct {
	roleGroups map[string]string
	groups     map[string]map[string]struct{}
}

func NewPermissionChecker(cfg internal.PermissionsConfig) *PermissionChecker {
	c := &PermissionChecker{
		roleGroups: make(map[string]string, len(cfg.RoleGroups)),
		groups:     make(map[string]map[string]struct{}, len(cfg.Groups)),
	}
	for role, group := range cfg.RoleGroups {
		c.roleGroups[role] = group
	}
	for group, capabilities := range cfg.Groups {
		set := make(map[string]struct{}, len(capabilities))
		for _, capability := range capabilities {
			set[capability] = struct{}{}
		}
		c.groups[group] = set
	}
	return c
}

func (c *PermissionChecker) HasCapability(identity *Identity, capability string) bool {
	if identity == nil {
		return false
	}
	if identity.IsSuperuser {
		return true
	}
	for _, group := range c.groupsOf(identity) {
		if _, ok := c.groups[group][capability]; ok {
			return true
		}
	}
	return false
}

// Capabilities lists the aggregated capability set of identity, sorted.
func (c *PermissionChecker) Capabilities(identity *Identity) []string {
	if identity == nil {
		return nil
	}
	seen := map[string]struct{}{}
	for _, group := range c.groupsOf(identity) {
		for capability := range c.groups[group] {
			seen[capability] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for capability := range seen {
		out = append(out, capability)
	}
	sort.Strings(out)
	return out
}

// GroupForRole returns the membership a collaborator of role must hold.
func (c *PermissionChecker) GroupForRole(role string) (string, bool) {
	group, ok := c.roleGroups[role]
	return group, ok
}

func (c *PermissionChecker) groupsOf(identity *Identity) []string {
	if len(identity.Groups) > 0 {
		return identity.Groups
	}
	if group, ok := c.roleGroups[identity.Role]; ok {
		return []string{group}
	}
	return nil
}
