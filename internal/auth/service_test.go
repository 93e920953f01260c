package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockRepository struct {
	byUsername map[string]*collaboratorDatamodel.Collaborator
	failWith   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{byUsername: map[string]*collaboratorDatamodel.Collaborator{}}
}

func (m *mockRepository) add(c *collaboratorDatamodel.Collaborator) {
	m.byUsername[c.Username] = c
}

func (m *mockRepository) GetByUsername(_ context.Context, username string) (*collaboratorDatamodel.Collaborator, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if c, ok := m.byUsername[username]; ok {
		return c, nil
	}
	return nil, internal.NewNotFoundError("collaborator not found", internal.ErrCodeCollaboratorNotFound)
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*collaboratorDatamodel.Collaborator, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, c := range m.byUsername {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, internal.NewNotFoundError("collaborator not found", internal.ErrCodeCollaboratorNotFound)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockRepository
		service *auth.Service
		logins  []string
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		hash, err := bcrypt.GenerateFromPassword([]byte("SalesPassword9474"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo.add(&collaboratorDatamodel.Collaborator{
			ID:           2,
			FirstName:    "Boris",
			LastName:     "Johnson",
			Username:     "borisSales",
			PasswordHash: string(hash),
			IsActive:     true,
			Role:         &collaboratorDatamodel.Role{ID: 2, Name: internal.RoleSales},
			Groups:       []collaboratorDatamodel.Group{{ID: 2, Name: internal.GroupSales}},
		})
		repo.add(&collaboratorDatamodel.Collaborator{
			ID:           3,
			Username:     "gone",
			PasswordHash: string(hash),
			IsActive:     false,
		})

		logins = nil
		bus := events.NewEventBus(quietLogger())
		bus.Subscribe(events.AllEvents, func(_ context.Context, e events.Event) error {
			logins = append(logins, e.EventType())
			return nil
		})

		service = auth.NewService(repo, internal.SecurityConfig{
			BCryptCost:             bcrypt.MinCost,
			LoginAttemptsPerMinute: 60,
			LoginBurst:             10,
		}, bus, quietLogger())
	})

	Describe("Authenticate", func() {
		It("returns the identity with role and groups", func() {
			identity, err := service.Authenticate(ctx, auth.LoginDTO{Username: "borisSales", Password: "SalesPassword9474"})
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.ID).To(Equal(int64(2)))
			Expect(identity.FullName).To(Equal("Boris Johnson"))
			Expect(identity.Role).To(Equal(internal.RoleSales))
			Expect(identity.Groups).To(ConsistOf(internal.GroupSales))
			Expect(logins).To(Equal([]string{events.EventTypeLoginSucceeded}))
		})

		It("trims the username", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "  borisSales ", Password: "SalesPassword9474"})
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("rejects bad credentials with one message",
			func(username, password string) {
				identity, err := service.Authenticate(ctx, auth.LoginDTO{Username: username, Password: password})
				Expect(identity).To(BeNil())
				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
				Expect(err.Error()).To(Equal("Incorrect username or password"))
			},
			Entry("wrong password", "borisSales", "nope"),
			Entry("unknown username", "nobody", "SalesPassword9474"),
			Entry("inactive collaborator", "gone", "SalesPassword9474"),
		)

		It("publishes failed logins", func() {
			_, _ = service.Authenticate(ctx, auth.LoginDTO{Username: "borisSales", Password: "nope"})
			Expect(logins).To(Equal([]string{events.EventTypeLoginFailed}))
		})

		It("requires both fields", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: " ", Password: ""})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("passes storage failures through", func() {
			repo.failWith = internal.NewStorageUnavailableError(io.ErrUnexpectedEOF)
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "borisSales", Password: "SalesPassword9474"})
			Expect(internal.IsType(err, internal.ErrorTypeStorageUnavailable)).To(BeTrue())
		})

		It("throttles attempts beyond the burst", func() {
			service = auth.NewService(repo, internal.SecurityConfig{
				BCryptCost:             bcrypt.MinCost,
				LoginAttemptsPerMinute: 1,
				LoginBurst:             2,
			}, nil, quietLogger())

			for i := 0; i < 2; i++ {
				_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "borisSales", Password: "nope"})
				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			}
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "borisSales", Password: "SalesPassword9474"})
			Expect(err).To(MatchError(internal.ErrTooManyAttempts))
		})
	})

	Describe("Resolve", func() {
		It("reloads an active collaborator", func() {
			identity, err := service.Resolve(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.Username).To(Equal("borisSales"))
		})

		It("rejects unknown and inactive collaborators as invalid sessions", func() {
			_, err := service.Resolve(ctx, 99)
			Expect(err).To(MatchError(internal.ErrInvalidSession))
			_, err = service.Resolve(ctx, 3)
			Expect(err).To(MatchError(internal.ErrInvalidSession))
		})
	})

	Describe("HashPassword", func() {
		It("produces a verifiable bcrypt hash", func() {
			hash, err := service.HashPassword("Secret123")
			Expect(err).NotTo(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("Secret123"))).To(Succeed())
		})
	})
})
