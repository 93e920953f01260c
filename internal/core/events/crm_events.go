package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePermissionDenied       = "security.permission_denied"
	EventTypeLoginSucceeded         = "security.login_succeeded"
	EventTypeLoginFailed            = "security.login_failed"
	EventTypeCollaboratorRegistered = "collaborator.registered"
	EventTypeCollaboratorModified   = "collaborator.modified"
	EventTypeCollaboratorDeleted    = "collaborator.deleted"
	EventTypeRoleChanged            = "collaborator.role_changed"
	EventTypeClientCreated          = "client.created"
	EventTypeClientDeleted          = "client.deleted"
	EventTypeContractCreated        = "contract.created"
	EventTypeContractStatusChanged  = "contract.status_changed"
	EventTypeEventCreated           = "event.created"
	EventTypeSupportAssigned        = "event.support_assigned"
)

// AuditEvent records who did what to which record.
type AuditEvent struct {
	BaseEvent
	ActorID    int64  `json:"actor_id"`
	EntityKind string `json:"entity_kind,omitempty"`
	EntityID   int64  `json:"entity_id,omitempty"`
}

func newAuditEvent(eventType string, actorID int64, kind string, entityID int64, data map[string]interface{}) *AuditEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &AuditEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      data,
		},
		ActorID:    actorID,
		EntityKind: kind,
		EntityID:   entityID,
	}
}

func NewPermissionDeniedEvent(actorID int64, capability, reason string) *AuditEvent {
	return newAuditEvent(EventTypePermissionDenied, actorID, "", 0, map[string]interface{}{
		"capability": capability,
		"reason":     reason,
	})
}

func NewLoginEvent(succeeded bool, actorID int64, username string) *AuditEvent {
	eventType := EventTypeLoginFailed
	if succeeded {
		eventType = EventTypeLoginSucceeded
	}
	return newAuditEvent(eventType, actorID, "collaborator", actorID, map[string]interface{}{
		"username": username,
	})
}

// NewRecordEvent covers the plain create/modify/delete notifications.
func NewRecordEvent(eventType string, actorID int64, kind string, entityID int64) *AuditEvent {
	return newAuditEvent(eventType, actorID, kind, entityID, nil)
}

func NewRoleChangedEvent(actorID, collaboratorID int64, from, to string) *AuditEvent {
	return newAuditEvent(EventTypeRoleChanged, actorID, "collaborator", collaboratorID, map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

func NewContractStatusChangedEvent(actorID, contractID int64, from, to string) *AuditEvent {
	return newAuditEvent(EventTypeContractStatusChanged, actorID, "contract", contractID, map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

func NewSupportAssignedEvent(actorID, eventID, supportID int64) *AuditEvent {
	return newAuditEvent(EventTypeSupportAssigned, actorID, "event", eventID, map[string]interface{}{
		"support_contact_id": supportID,
	})
}
