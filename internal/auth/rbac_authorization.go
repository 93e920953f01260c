package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
)

// Authorizer turns oracle answers into PermissionDenied errors and records
// every denial as a security event.
type Authorizer struct {
	oracle    Oracle
	policy    *OwnershipPolicy
	publisher events.Publisher
	logger    *slog.Logger
}

func NewAuthorizer(oracle Oracle, publisher events.Publisher, logger *slog.Logger) *Authorizer {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Authorizer{
		oracle:    oracle,
		policy:    &OwnershipPolicy{},
		publisher: publisher,
		logger:    logger,
	}
}

func (a *Authorizer) Can(operator *Identity, capability string) bool {
	return a.oracle.HasCapability(operator, capability)
}

// Require fails with PermissionDenied when operator lacks capability.
func (a *Authorizer) Require(ctx context.Context, operator *Identity, capability string) error {
	if a.oracle.HasCapability(operator, capability) {
		return nil
	}
	return a.Deny(ctx, operator, capability, internal.MissingCapability(capability))
}

// RequireOwnership fails with denial when the ownership policy refuses action
// on a record attached to ownerID. The denial is audited under capability.
func (a *Authorizer) RequireOwnership(ctx context.Context, operator *Identity, capability string, action OwnershipAction, ownerID *int64, denial *internal.AppError) error {
	if a.policy.Allow(operator, ownerID, action) {
		return nil
	}
	return a.Deny(ctx, operator, capability, denial)
}

// Deny logs and publishes err, then returns it.
func (a *Authorizer) Deny(ctx context.Context, operator *Identity, capability string, err *internal.AppError) error {
	var operatorID int64
	if operator != nil {
		operatorID = operator.ID
	}
	a.logger.WarnContext(ctx, "access denied",
		"collaborator_id", operatorID,
		"operator", operator.String(),
		"required_capability", capability,
		"code", err.Code)

	if pubErr := a.publisher.PublishSync(ctx, events.NewPermissionDeniedEvent(operatorID, capability, string(err.Code))); pubErr != nil {
		a.logger.ErrorContext(ctx, "failed to publish denial", "error", pubErr)
	}
	return err
}
