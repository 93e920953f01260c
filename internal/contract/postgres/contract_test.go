package postgres_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/contract"
	contractPostgres "github.com/frahmantamala/epic-events-crm/internal/contract/postgres"
	clientDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/client"
	collaboratorDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/collaborator"
	contractDatamodel "github.com/frahmantamala/epic-events-crm/internal/core/datamodel/contract"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestContractPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contract Postgres Suite")
}

var _ = Describe("Contract Repository", func() {
	var (
		db    *gorm.DB
		repo  contract.RepositoryAPI
		ctx   context.Context
		owner *collaboratorDatamodel.Collaborator
		acme  *clientDatamodel.Client
		other *clientDatamodel.Client
	)

	newContract := func(clientID int64, status string, due string) *contractDatamodel.Contract {
		c := &contractDatamodel.Contract{
			ClientID:            clientID,
			CommercialContactID: &owner.ID,
			Value:               decimal.RequireFromString("1000"),
			Due:                 decimal.RequireFromString(due),
			Status:              status,
		}
		Expect(repo.Create(ctx, c)).To(Succeed())
		return c
	}

	BeforeEach(func() {
		var err error
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		repo = contractPostgres.NewContractRepository(db)
		ctx = context.Background()

		owner = &collaboratorDatamodel.Collaborator{
			FirstName: "Sales", LastName: "One", Username: "sales1",
			Email: "sales1@epicevents.com", EmployeeNumber: "1", PasswordHash: "x", IsActive: true,
		}
		Expect(db.Create(owner).Error).To(Succeed())

		acme = &clientDatamodel.Client{Name: "Acme", Email: "a@acme.com", Phone: "1", CompanyName: "Acme", CommercialContactID: &owner.ID}
		other = &clientDatamodel.Client{Name: "Globex", Email: "g@globex.com", Phone: "2", CompanyName: "Globex"}
		Expect(db.Create(acme).Error).To(Succeed())
		Expect(db.Create(other).Error).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("stores amounts with their client and commercial contact", func() {
		c := newContract(acme.ID, contract.StatusNotSigned, "250.75")

		loaded, err := repo.GetByID(ctx, c.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Due.Equal(decimal.RequireFromString("250.75"))).To(BeTrue())
		Expect(loaded.CreationDate).NotTo(BeZero())
		Expect(loaded.Client.Name).To(Equal("Acme"))
		Expect(loaded.CommercialContact.Username).To(Equal("sales1"))
	})

	It("filters by client set and status", func() {
		newContract(acme.ID, contract.StatusSigned, "0")
		newContract(acme.ID, contract.StatusNotSigned, "10")
		newContract(other.ID, contract.StatusSigned, "0")

		all, err := repo.ListByClientIDs(ctx, []int64{acme.ID}, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))

		signed, err := repo.ListByClientIDs(ctx, []int64{acme.ID}, contract.StatusSigned)
		Expect(err).NotTo(HaveOccurred())
		Expect(signed).To(HaveLen(1))
		Expect(signed[0].Status).To(Equal(contract.StatusSigned))

		none, err := repo.ListByClientIDs(ctx, nil, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(none).To(BeEmpty())
	})

	It("updates the status in place", func() {
		c := newContract(acme.ID, contract.StatusNotSigned, "10")
		Expect(repo.Update(ctx, c.ID, map[string]interface{}{"status": contract.StatusSigned})).To(Succeed())

		loaded, err := repo.GetByID(ctx, c.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Status).To(Equal(contract.StatusSigned))
	})

	It("reports unknown contracts as not found", func() {
		_, err := repo.GetByID(ctx, 404)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeContractNotFound))

		err = repo.Update(ctx, 404, map[string]interface{}{"status": contract.StatusSigned})
		Expect(internal.IsType(err, internal.ErrorTypeNotFound)).To(BeTrue())
	})

	It("rejects a contract for a missing client", func() {
		err := repo.Create(ctx, &contractDatamodel.Contract{ClientID: 999, Status: contract.StatusSigned})
		Expect(internal.IsType(err, internal.ErrorTypeValidation)).To(BeTrue())
	})
})
