package auth_test

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SessionManager", func() {
	var (
		manager  *auth.SessionManager
		path     string
		now      time.Time
		identity *auth.Identity
		cfg      internal.SecurityConfig
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "session")
		now = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
		cfg = internal.SecurityConfig{
			SessionSecret: strings.Repeat("s", 32),
			SessionTTL:    time.Hour,
			SessionFile:   path,
		}
		manager = auth.NewSessionManager(cfg).WithClock(func() time.Time { return now })
		identity = &auth.Identity{ID: 7, Username: "aurelien", Role: internal.RoleManagement}
	})

	It("round-trips a saved session", func() {
		Expect(manager.Save(identity)).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))

		claims, err := manager.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.CollaboratorID).To(Equal(int64(7)))
		Expect(claims.Username).To(Equal("aurelien"))
		Expect(claims.Role).To(Equal(internal.RoleManagement))
	})

	It("rejects expired sessions", func() {
		Expect(manager.Save(identity)).To(Succeed())
		now = now.Add(2 * time.Hour)

		_, err := manager.Load()
		Expect(err).To(MatchError(internal.ErrSessionExpired))
	})

	It("rejects tokens signed with another secret", func() {
		other := auth.NewSessionManager(internal.SecurityConfig{
			SessionSecret: strings.Repeat("x", 32),
			SessionTTL:    time.Hour,
		}).WithClock(func() time.Time { return now })
		token, err := other.Issue(identity)
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.Parse(token)
		Expect(err).To(MatchError(internal.ErrInvalidSession))
	})

	It("rejects tampered tokens", func() {
		token, err := manager.Issue(identity)
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.Parse(token[:len(token)-2] + "xx")
		Expect(err).To(MatchError(internal.ErrInvalidSession))
	})

	It("treats a missing file as no session and clears idempotently", func() {
		_, err := manager.Load()
		Expect(err).To(MatchError(internal.ErrInvalidSession))

		Expect(manager.Save(identity)).To(Succeed())
		Expect(manager.Clear()).To(Succeed())
		Expect(manager.Clear()).To(Succeed())
		_, err = os.Stat(path)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})
