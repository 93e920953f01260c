package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/workflow"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BaseHandler", func() {
	var (
		presenter *scriptedPresenter
		handler   *workflow.BaseHandler
		ctx       context.Context
	)

	BeforeEach(func() {
		presenter = newScriptedPresenter()
		handler = workflow.NewBaseHandler(presenter, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = context.Background()
	})

	DescribeTable("renders step failures",
		func(err error, kind workflow.MessageKind, text string) {
			Expect(handler.RunStep(ctx, "step", func(context.Context) error { return err })).To(Succeed())
			Expect(presenter.messages).To(Equal([]shownMessage{{kind: kind, text: text}}))
		},
		Entry("cancellation", internal.ErrNoChanges, workflow.MessageInfo, "No modifications were made."),
		Entry("permission", internal.ErrNotOwner, workflow.MessageError, "You can only modify records assigned to you."),
		Entry("storage", internal.NewStorageUnavailableError(io.ErrUnexpectedEOF), workflow.MessageError, "A database error occurred. Please try again later."),
		Entry("duplicate", internal.NewDuplicateValueError("employee_number", "9474"), workflow.MessageError, "The employee number: 9474 is already in use."),
		Entry("unknown", errors.New("boom"), workflow.MessageError, "An unexpected error occurred. Please try again."),
	)

	It("recovers a panicking step", func() {
		Expect(handler.RunStep(ctx, "panics", func(context.Context) error { panic("nil map") })).To(Succeed())
		Expect(presenter.messagesOf(workflow.MessageError)).To(ConsistOf("An unexpected error occurred. Please try again."))
	})

	It("hands exhausted input back to the caller", func() {
		err := handler.RunStep(ctx, "reads", func(context.Context) error { return io.EOF })
		Expect(err).To(MatchError(io.EOF))
		Expect(presenter.messages).To(BeEmpty())
	})

	It("hands an interrupted context back instead of a storage error", func() {
		interrupted, cancel := context.WithCancel(ctx)
		cancel()

		err := handler.RunStep(interrupted, "saves", func(context.Context) error {
			return internal.NewStorageUnavailableError(context.Canceled)
		})
		Expect(err).To(MatchError(context.Canceled))
		Expect(presenter.messages).To(BeEmpty())
	})

	It("refuses to choose from an empty list", func() {
		_, err := handler.Choose("Pick", "Nothing here.", nil)
		Expect(internal.IsCancelled(err)).To(BeTrue())
		Expect(err.Error()).To(Equal("Nothing here."))
	})

	It("treats backing out of a list as a cancellation", func() {
		presenter.choices = []string{""}
		_, err := handler.Choose("Pick", "Nothing here.", []workflow.Row{{ID: 1, Label: "one"}})
		Expect(err).To(MatchError(internal.ErrDeclined))
	})
})
