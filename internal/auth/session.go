package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the session token claims
type Claims struct {
	CollaboratorID int64  `json:"collaborator_id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager signs session tokens and keeps the current one in a file.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	path   string
	now    func() time.Time
}

func NewSessionManager(cfg internal.SecurityConfig) *SessionManager {
	return &SessionManager{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
		path:   cfg.SessionFile,
		now:    time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

func (m *SessionManager) Issue(identity *Identity) (string, error) {
	now := m.now()
	claims := &Claims{
		CollaboratorID: identity.ID,
		Username:       identity.Username,
		Role:           identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", identity.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrSessionExpired
		}
		return nil, internal.ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.CollaboratorID == 0 {
		return nil, internal.ErrInvalidSession
	}
	return claims, nil
}

// Save issues a token for identity and writes it to the session file.
func (m *SessionManager) Save(identity *Identity) error {
	token, err := m.Issue(identity)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	if err := os.WriteFile(m.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads and validates the saved session. A missing file is ErrInvalidSession.
func (m *SessionManager) Load() (*Claims, error) {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, internal.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return m.Parse(strings.TrimSpace(string(raw)))
}

func (m *SessionManager) Clear() error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
