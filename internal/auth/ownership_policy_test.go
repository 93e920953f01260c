package auth_test

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ownerRef(id int64) *int64 { return &id }

var _ = Describe("OwnershipPolicy", func() {
	policy := &auth.OwnershipPolicy{}

	DescribeTable("decides by role and ownership",
		func(identity *auth.Identity, ownerID *int64, action auth.OwnershipAction, allowed bool) {
			Expect(policy.Allow(identity, ownerID, action)).To(Equal(allowed))
		},
		Entry("sales owner modifies client",
			&auth.Identity{ID: 2, Role: internal.RoleSales}, ownerRef(2), auth.ActionModifyClient, true),
		Entry("sales non-owner modifies client",
			&auth.Identity{ID: 2, Role: internal.RoleSales}, ownerRef(3), auth.ActionModifyClient, false),
		Entry("sales on an unassigned client",
			&auth.Identity{ID: 2, Role: internal.RoleSales}, nil, auth.ActionModifyClient, false),
		Entry("management modifies any client",
			&auth.Identity{ID: 1, Role: internal.RoleManagement}, ownerRef(3), auth.ActionModifyClient, true),
		Entry("sales owner creates event",
			&auth.Identity{ID: 2, Role: internal.RoleSales}, ownerRef(2), auth.ActionCreateEvent, true),
		Entry("sales non-owner creates event",
			&auth.Identity{ID: 2, Role: internal.RoleSales}, ownerRef(4), auth.ActionCreateEvent, false),
		Entry("management creates event on someone else's client",
			&auth.Identity{ID: 1, Role: internal.RoleManagement}, ownerRef(4), auth.ActionCreateEvent, false),
		Entry("support owner edits event",
			&auth.Identity{ID: 5, Role: internal.RoleSupport}, ownerRef(5), auth.ActionEditEvent, true),
		Entry("support non-owner edits event",
			&auth.Identity{ID: 5, Role: internal.RoleSupport}, ownerRef(6), auth.ActionEditEvent, false),
		Entry("support on an unassigned event",
			&auth.Identity{ID: 5, Role: internal.RoleSupport}, nil, auth.ActionEditEvent, false),
		Entry("management edits any event",
			&auth.Identity{ID: 1, Role: internal.RoleManagement}, nil, auth.ActionEditEvent, true),
		Entry("superuser bypasses ownership",
			&auth.Identity{ID: 9, IsSuperuser: true}, ownerRef(4), auth.ActionCreateEvent, true),
		Entry("unknown action",
			&auth.Identity{ID: 1, Role: internal.RoleManagement}, ownerRef(1), auth.OwnershipAction("archive"), false),
		Entry("no operator",
			nil, ownerRef(1), auth.ActionModifyClient, false),
	)

	It("exposes helpers per action", func() {
		sales := &auth.Identity{ID: 2, Role: internal.RoleSales}
		Expect(policy.CanModifyClient(sales, ownerRef(2))).To(BeTrue())
		Expect(policy.CanCreateEvent(sales, ownerRef(3))).To(BeFalse())
		Expect(policy.CanEditEvent(sales, nil)).To(BeTrue())
	})
})

var _ = Describe("Authorizer.RequireOwnership", func() {
	It("returns the given denial and publishes it", func() {
		buf := &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(buf, nil))
		bus := events.NewEventBus(logger)
		var denied []events.Event
		bus.Subscribe(events.EventTypePermissionDenied, func(_ context.Context, e events.Event) error {
			denied = append(denied, e)
			return nil
		})

		authorizer := auth.NewAuthorizer(auth.NewPermissionChecker(internal.DefaultPermissions()), bus, logger)
		sales := &auth.Identity{ID: 2, Username: "lucasMoreau", Role: internal.RoleSales}

		Expect(authorizer.RequireOwnership(context.Background(), sales, auth.CapChangeClient,
			auth.ActionModifyClient, ownerRef(2), internal.ErrNotOwner)).To(Succeed())
		Expect(denied).To(BeEmpty())

		err := authorizer.RequireOwnership(context.Background(), sales, auth.CapChangeClient,
			auth.ActionModifyClient, ownerRef(7), internal.ErrNotOwner)
		Expect(err).To(MatchError(internal.ErrNotOwner))
		Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(BeTrue())
		Expect(denied).To(HaveLen(1))
		Expect(buf.String()).To(ContainSubstring("access denied"))
	})
})
