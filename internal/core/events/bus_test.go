package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
	pkglogger "github.com/frahmantamala/epic-events-crm/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus    *events.EventBus
		buf    *bytes.Buffer
		logger *slog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		logger = slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
		bus = events.NewEventBus(logger)
	})

	It("delivers to handlers of the event type and to wildcard handlers", func() {
		var got []string
		bus.Subscribe(events.EventTypeClientCreated, func(_ context.Context, e events.Event) error {
			got = append(got, "typed:"+e.EventType())
			return nil
		})
		bus.Subscribe(events.AllEvents, func(_ context.Context, e events.Event) error {
			got = append(got, "all:"+e.EventType())
			return nil
		})

		Expect(bus.PublishSync(context.Background(), events.NewRecordEvent(events.EventTypeClientCreated, 1, "client", 7))).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.NewRecordEvent(events.EventTypeEventCreated, 1, "event", 3))).To(Succeed())

		Expect(got).To(Equal([]string{
			"typed:client.created",
			"all:client.created",
			"all:event.created",
		}))
	})

	It("returns the first handler failure", func() {
		calls := 0
		bus.Subscribe(events.EventTypeClientDeleted, func(context.Context, events.Event) error {
			calls++
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeClientDeleted, func(context.Context, events.Event) error {
			calls++
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewRecordEvent(events.EventTypeClientDeleted, 1, "client", 2))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(calls).To(Equal(1))
	})

	It("is a no-op without subscribers", func() {
		Expect(bus.PublishSync(context.Background(), events.NewSupportAssignedEvent(1, 2, 3))).To(Succeed())
	})

	It("gives every event a distinct id", func() {
		a := events.NewRecordEvent(events.EventTypeClientCreated, 1, "client", 1)
		b := events.NewRecordEvent(events.EventTypeClientCreated, 1, "client", 1)
		Expect(a.EventID()).NotTo(BeEmpty())
		Expect(a.EventID()).NotTo(Equal(b.EventID()))
	})
})

var _ = Describe("AuditLogger", func() {
	It("logs permission denials at warn with the session collaborator", func() {
		buf := &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
		bus := events.NewEventBus(logger)
		events.NewAuditLogger(logger).Register(bus)

		ctx := internal.ContextWithCollaboratorID(context.Background(), 42)
		Expect(bus.PublishSync(ctx, events.NewPermissionDeniedEvent(42, "add_event", "missing capability"))).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("level=WARN"))
		Expect(out).To(ContainSubstring("event_type=security.permission_denied"))
		Expect(out).To(ContainSubstring("session_collaborator_id=42"))
		Expect(out).To(ContainSubstring("capability=add_event"))
	})

	It("logs record changes at info", func() {
		buf := &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(buf, nil))
		bus := events.NewEventBus(logger)
		events.NewAuditLogger(logger).Register(bus)

		Expect(bus.PublishSync(context.Background(), events.NewContractStatusChangedEvent(1, 9, "not_signed", "signed"))).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("level=INFO"))
		Expect(out).To(ContainSubstring("entity_kind=contract"))
		Expect(out).To(ContainSubstring("to=signed"))
	})

	It("writes to the session logger carried by the context", func() {
		fallback := &bytes.Buffer{}
		session := &bytes.Buffer{}
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(fallback, nil)))
		events.NewAuditLogger(slog.New(slog.NewTextHandler(fallback, nil))).Register(bus)

		ctx := pkglogger.Into(context.Background(), slog.New(slog.NewTextHandler(session, nil)).With("session_id", "abc"))
		Expect(bus.PublishSync(ctx, events.NewContractStatusChangedEvent(1, 9, "not_signed", "signed"))).To(Succeed())

		Expect(fallback.String()).To(BeEmpty())
		Expect(session.String()).To(ContainSubstring("session_id=abc"))
		Expect(session.String()).To(ContainSubstring("component=audit"))
	})
})
