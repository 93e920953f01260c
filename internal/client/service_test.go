package client_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	"github.com/frahmantamala/epic-events-crm/internal/client"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestClientService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client Service Suite")
}

// MockRepository implements client.RepositoryAPI for testing
type MockRepository struct {
	clients   map[int64]*clientDatamodel.Client
	nextID    int64
	updates   []map[string]interface{}
	deleted   []int64
	failError error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{clients: map[int64]*clientDatamodel.Client{}, nextID: 1}
}

func (m *MockRepository) GetAll(context.Context) ([]*clientDatamodel.Client, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	var out []*clientDatamodel.Client
	for id := int64(1); id < m.nextID; id++ {
		if c, ok := m.clients[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*clientDatamodel.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, internal.NewNotFoundError("Client not found", internal.ErrCodeClientNotFound)
}

func (m *MockRepository) ListByCommercialContact(ctx context.Context, collaboratorID int64) ([]*clientDatamodel.Client, error) {
	all, err := m.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []*clientDatamodel.Client
	for _, c := range all {
		if c.CommercialContactID != nil && *c.CommercialContactID == collaboratorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockRepository) Create(_ context.Context, c *clientDatamodel.Client) error {
	if m.failError != nil {
		return m.failError
	}
	c.ID = m.nextID
	m.nextID++
	m.clients[c.ID] = c
	return nil
}

func (m *MockRepository) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	if m.failError != nil {
		return m.failError
	}
	m.updates = append(m.updates, fields)
	c := m.clients[id]
	if v, ok := fields["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := fields["email"]; ok {
		c.Email = v.(string)
	}
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id int64) error {
	if m.failError != nil {
		return m.failError
	}
	m.deleted = append(m.deleted, id)
	delete(m.clients, id)
	return nil
}

type collaboratorStub map[int64]*collaboratorDatamodel.Collaborator

func (s collaboratorStub) GetByID(_ context.Context, id int64) (*collaboratorDatamodel.Collaborator, error) {
	if c, ok := s[id]; ok {
		return c, nil
	}
	return nil, internal.NewNotFoundError("Collaborator not found", internal.ErrCodeCollaboratorNotFound)
}

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64 { return &id }

var _ = Describe("Client Service", func() {
	var (
		repo       *MockRepository
		service    *client.Service
		ctx        context.Context
		management *auth.Identity
		sales      *auth.Identity
		otherSales *auth.Identity
		support    *auth.Identity
		acme       client.CreateClientDTO
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		authorizer := auth.NewAuthorizer(auth.NewPermissionChecker(internal.DefaultPermissions()), nil, logger)
		repo = NewMockRepository()
		collaborators := collaboratorStub{
			2: {ID: 2, Username: "sales1", Role: &collaboratorDatamodel.Role{Name: internal.RoleSales}},
			4: {ID: 4, Username: "support1", Role: &collaboratorDatamodel.Role{Name: internal.RoleSupport}},
		}
		service = client.NewService(repo, collaborators, authorizer, nil, logger)

		management = &auth.Identity{ID: 1, Username: "aurelien", Role: internal.RoleManagement}
		sales = &auth.Identity{ID: 2, Username: "sales1", Role: internal.RoleSales}
		otherSales = &auth.Identity{ID: 3, Username: "sales2", Role: internal.RoleSales}
		support = &auth.Identity{ID: 4, Username: "support1", Role: internal.RoleSupport}

		acme = client.CreateClientDTO{
			Name:        "Acme",
			Email:       "acme@x.com",
			Phone:       "0102030405",
			CompanyName: "Acme Corp",
		}
	})

	Describe("Create", func() {
		It("stamps the sales operator as commercial contact", func() {
			created, err := service.Create(ctx, sales, acme)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.CommercialContactID).To(HaveValue(Equal(sales.ID)))
		})

		It("ignores an explicit owner chosen by a sales operator", func() {
			acme.CommercialContactID = idPtr(99)
			created, err := service.Create(ctx, sales, acme)
			Expect(err).NotTo(HaveOccurred())
			Expect(*created.CommercialContactID).To(Equal(sales.ID))
		})

		It("lets management assign an existing collaborator", func() {
			acme.CommercialContactID = idPtr(2)
			created, err := service.Create(ctx, management, acme)
			Expect(err).NotTo(HaveOccurred())
			Expect(*created.CommercialContactID).To(Equal(int64(2)))

			acme.CommercialContactID = idPtr(42)
			_, err = service.Create(ctx, management, acme)
			Expect(internal.IsType(err, internal.ErrorTypeNotFound)).To(BeTrue())
		})

		It("refuses a commercial contact outside the sales role", func() {
			acme.CommercialContactID = idPtr(4)
			_, err := service.Create(ctx, management, acme)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotSalesRole))
			Expect(appErr.Message).To(ContainSubstring("support1"))
			Expect(repo.clients).To(BeEmpty())
		})

		It("validates field limits", func() {
			acme.Phone = "012345678901234567890"
			acme.Email = "not-an-email"
			_, err := service.Create(ctx, sales, acme)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring("Invalid email format"))
			Expect(appErr.GetDetailedMessage()).To(ContainSubstring("phone must not exceed 20 characters"))
			Expect(repo.clients).To(BeEmpty())
		})

		It("is denied to support", func() {
			_, err := service.Create(ctx, support, acme)
			Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(BeTrue())
		})
	})

	Describe("Modify", func() {
		var created *client.Client

		BeforeEach(func() {
			var err error
			created, err = service.Create(ctx, sales, acme)
			Expect(err).NotTo(HaveOccurred())
		})

		It("updates only the given fields", func() {
			updated, err := service.Modify(ctx, sales, created.ID, client.UpdateClientDTO{Name: strPtr("Acme Events"), Phone: strPtr(" ")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Acme Events"))
			Expect(repo.updates).To(Equal([]map[string]interface{}{{"name": "Acme Events"}}))
		})

		It("returns Cancelled for an empty delta without writing", func() {
			_, err := service.Modify(ctx, sales, created.ID, client.UpdateClientDTO{})
			Expect(err).To(MatchError(internal.ErrNoChanges))
			Expect(repo.updates).To(BeEmpty())
		})

		It("refuses another salesperson's client", func() {
			_, err := service.Modify(ctx, otherSales, created.ID, client.UpdateClientDTO{Name: strPtr("Mine now")})
			Expect(err).To(MatchError(internal.ErrNotOwner))
			Expect(repo.updates).To(BeEmpty())
		})

		It("lets management edit any client", func() {
			_, err := service.Modify(ctx, management, created.ID, client.UpdateClientDTO{Email: strPtr("hello@acme.com")})
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports an unknown client", func() {
			_, err := service.Modify(ctx, sales, 404, client.UpdateClientDTO{Name: strPtr("x")})
			Expect(internal.IsType(err, internal.ErrorTypeNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("requires delete_client and confirmation", func() {
			created, err := service.Create(ctx, sales, acme)
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(ctx, sales, created.ID, true)
			Expect(internal.IsType(err, internal.ErrorTypePermissionDenied)).To(BeTrue())

			err = service.Delete(ctx, management, created.ID, false)
			Expect(internal.IsCancelled(err)).To(BeTrue())
			Expect(repo.deleted).To(BeEmpty())

			Expect(service.Delete(ctx, management, created.ID, true)).To(Succeed())
			Expect(repo.deleted).To(Equal([]int64{created.ID}))
		})
	})

	Describe("List", func() {
		It("returns an empty list without error", func() {
			list, err := service.List(ctx, support)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("filters owned clients", func() {
			_, err := service.Create(ctx, sales, acme)
			Expect(err).NotTo(HaveOccurred())
			acme.CommercialContactID = idPtr(2)
			_, err = service.Create(ctx, management, acme)
			Expect(err).NotTo(HaveOccurred())
			acme.CommercialContactID = nil
			_, err = service.Create(ctx, management, acme)
			Expect(err).NotTo(HaveOccurred())

			owned, err := service.ListOwned(ctx, sales)
			Expect(err).NotTo(HaveOccurred())
			Expect(owned).To(HaveLen(2))
		})

		It("surfaces storage failures", func() {
			repo.failError = internal.NewStorageUnavailableError(io.ErrUnexpectedEOF)
			_, err := service.List(ctx, sales)
			Expect(internal.IsType(err, internal.ErrorTypeStorageUnavailable)).To(BeTrue())
		})
	})
})
