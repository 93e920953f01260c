package workflow_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/workflow"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubAuthenticator struct {
	accounts map[string]string
	attempts []string
}

func (a *stubAuthenticator) Authenticate(_ context.Context, dto auth.LoginDTO) (*auth.Identity, error) {
	a.attempts = append(a.attempts, dto.Username)
	if password, ok := a.accounts[dto.Username]; ok && password == dto.Password {
		return &auth.Identity{ID: 7, Username: dto.Username, Role: internal.RoleSales}, nil
	}
	return nil, internal.ErrInvalidCredentials
}

var _ = Describe("Login", func() {
	var (
		presenter     *scriptedPresenter
		handler       *workflow.BaseHandler
		authenticator *stubAuthenticator
	)

	BeforeEach(func() {
		presenter = newScriptedPresenter()
		handler = workflow.NewBaseHandler(presenter, slog.New(slog.NewTextHandler(io.Discard, nil)))
		authenticator = &stubAuthenticator{accounts: map[string]string{"sales1": "Secret123"}}
	})

	It("asks again until the credentials are accepted", func() {
		presenter.forms = []workflow.FieldValues{
			{"username": "sales1", "password": "wrong"},
			{"username": " sales1 ", "password": "Secret123"},
		}

		identity, err := handler.Login(context.Background(), authenticator)
		Expect(err).NotTo(HaveOccurred())
		Expect(identity.Username).To(Equal("sales1"))
		Expect(authenticator.attempts).To(Equal([]string{"sales1", "sales1"}))
		Expect(presenter.messagesOf(workflow.MessageError)).To(HaveLen(1))
		Expect(presenter.messagesOf(workflow.MessageInfo)).To(ConsistOf("Welcome sales1 (sales)."))
	})

	It("gives up when input ends", func() {
		_, err := handler.Login(context.Background(), authenticator)
		Expect(err).To(MatchError(io.EOF))
		Expect(authenticator.attempts).To(BeEmpty())
	})
})
