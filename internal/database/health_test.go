package database_test

import (
	"context"
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/frahmantamala/epic-events-crm/internal/database"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var _ = Describe("HealthChecker", func() {
	It("reports a reachable store with its pool statistics", func() {
		db, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())

		report := database.NewHealthChecker(db, 0).Check(context.Background())
		Expect(report.Healthy()).To(BeTrue())
		Expect(report.Components).To(HaveKey("sqlite"))
		Expect(report.Components["sqlite"].Details).To(HaveKey("open_connections"))
	})

	It("reports a failed ping as unhealthy", func() {
		sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())
		cfg := database.Config("error")
		cfg.DisableAutomaticPing = true
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
		Expect(err).NotTo(HaveOccurred())

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		report := database.NewHealthChecker(db, 0).Check(context.Background())
		Expect(report.Healthy()).To(BeFalse())
		Expect(report.Components["postgres"].Status).To(Equal(database.HealthUnhealthy))
		Expect(report.Components["postgres"].Message).To(ContainSubstring("connection refused"))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})
})
