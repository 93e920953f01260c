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

var allCapabilities = []string{
	auth.CapViewCollaborator,
	auth.CapManageCollaborators,
	auth.CapViewClient,
	auth.CapAddClient,
	auth.CapChangeClient,
	auth.CapDeleteClient,
	auth.CapViewContract,
	auth.CapManageContracts,
	auth.CapViewEvent,
	auth.CapAddEvent,
	auth.CapChangeEvent,
	auth.CapAssignEventSupport,
}

var _ = Describe("PermissionChecker", func() {
	var checker *auth.PermissionChecker

	BeforeEach(func() {
		checker = auth.NewPermissionChecker(internal.DefaultPermissions())
	})

	DescribeTable("grants exactly the role's group capabilities",
		func(role string) {
			identity := &auth.Identity{ID: 1, Role: role}
			group, ok := checker.GroupForRole(role)
			Expect(ok).To(BeTrue())
			expected := internal.DefaultPermissions().Groups[group]

			for _, capability := range allCapabilities {
				Expect(checker.HasCapability(identity, capability)).To(Equal(contains(expected, capability)), capability)
			}
			Expect(checker.Capabilities(identity)).To(ConsistOf(expected))
		},
		Entry("management", internal.RoleManagement),
		Entry("sales", internal.RoleSales),
		Entry("support", internal.RoleSupport),
	)

	It("prefers persisted group memberships over the role default", func() {
		identity := &auth.Identity{ID: 1, Role: internal.RoleSupport, Groups: []string{internal.GroupSales}}
		Expect(checker.HasCapability(identity, auth.CapAddEvent)).To(BeTrue())
		Expect(checker.HasCapability(identity, auth.CapChangeEvent)).To(BeFalse())
	})

	It("aggregates across several groups", func() {
		identity := &auth.Identity{ID: 1, Groups: []string{internal.GroupSales, internal.GroupSupport}}
		Expect(checker.HasCapability(identity, auth.CapAddEvent)).To(BeTrue())
		Expect(checker.HasCapability(identity, auth.CapChangeEvent)).To(BeTrue())
		Expect(checker.HasCapability(identity, auth.CapManageCollaborators)).To(BeFalse())
	})

	It("lets superusers through every check", func() {
		identity := &auth.Identity{ID: 1, IsSuperuser: true}
		for _, capability := range allCapabilities {
			Expect(checker.HasCapability(identity, capability)).To(BeTrue())
		}
		Expect(checker.HasCapability(identity, "anything_at_all")).To(BeTrue())
	})

	It("answers false for unknown identities, roles and capabilities", func() {
		Expect(checker.HasCapability(nil, auth.CapViewClient)).To(BeFalse())
		Expect(checker.HasCapability(&auth.Identity{ID: 1}, auth.CapViewClient)).To(BeFalse())
		Expect(checker.HasCapability(&auth.Identity{ID: 1, Role: "intern"}, auth.CapViewClient)).To(BeFalse())
		Expect(checker.HasCapability(&auth.Identity{ID: 1, Groups: []string{"ghosts"}}, auth.CapViewClient)).To(BeFalse())
		Expect(checker.HasCapability(&auth.Identity{ID: 1, Role: internal.RoleManagement}, "launch_rockets")).To(BeFalse())
	})
})

var _ = Describe("Authorizer", func() {
	It("returns PermissionDenied and publishes the denial", func() {
		buf := &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(buf, nil))
		bus := events.NewEventBus(logger)
		var denied []events.Event
		bus.Subscribe(events.EventTypePermissionDenied, func(_ context.Context, e events.Event) error {
			denied = append(denied, e)
			return nil
		})

		authorizer := auth.NewAuthorizer(auth.NewPermissionChecker(internal.DefaultPermissions()), bus, logger)
		support := &auth.Identity{ID: 5, Username: "emmaStone", Role: internal.RoleSupport}

		Expect(authorizer.Require(context.Background(), support, auth.CapViewEvent)).To(Succeed())

		err := authorizer.Require(context.Background(), support, auth.CapAddEvent)
		Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(BeTrue())
		Expect(denied).To(HaveLen(1))
		Expect(denied[0].(*events.AuditEvent).ActorID).To(Equal(int64(5)))
		Expect(buf.String()).To(ContainSubstring("access denied"))
	})
})

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
