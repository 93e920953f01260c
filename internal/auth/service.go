package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/events"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

type Service struct {
	repo       RepositoryAPI
	limiter    *rate.Limiter
	bcryptCost int
	publisher  events.Publisher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, cfg internal.SecurityConfig, publisher events.Publisher, logger *slog.Logger) *Service {
	cost := cfg.BCryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:       repo,
		limiter:    newLoginLimiter(cfg.LoginAttemptsPerMinute, cfg.LoginBurst),
		bcryptCost: cost,
		publisher:  publisher,
		logger:     logger,
	}
}

func newLoginLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// Authenticate verifies username and password. Unknown users, inactive
// users and wrong passwords share one failure so usernames cannot be guessed.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*Identity, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !s.limiter.Allow() {
		s.logger.WarnContext(ctx, "login throttled", "username", dto.Username)
		return nil, internal.ErrTooManyAttempts
	}

	username := strings.TrimSpace(dto.Username)
	c, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if internal.IsType(err, internal.ErrorTypeNotFound) {
			s.loginFailed(ctx, username, "unknown username")
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "failed to load credentials", "username", username, "error", err)
		return nil, err
	}

	if !c.IsActive {
		s.loginFailed(ctx, username, "inactive")
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(dto.Password)); err != nil {
		s.loginFailed(ctx, username, "wrong password")
		return nil, internal.ErrInvalidCredentials
	}

	identity := IdentityFromDataModel(c)
	s.logger.InfoContext(ctx, "login succeeded", "collaborator_id", identity.ID, "role", identity.Role)
	s.publish(ctx, events.NewLoginEvent(true, identity.ID, identity.Username))
	return identity, nil
}

// Resolve reloads the identity behind a saved session.
func (s *Service) Resolve(ctx context.Context, collaboratorID int64) (*Identity, error) {
	c, err := s.repo.GetByID(ctx, collaboratorID)
	if err != nil {
		if internal.IsType(err, internal.ErrorTypeNotFound) {
			return nil, internal.ErrInvalidSession
		}
		return nil, err
	}
	if !c.IsActive {
		return nil, internal.ErrInvalidSession
	}
	return IdentityFromDataModel(c), nil
}

func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) loginFailed(ctx context.Context, username, reason string) {
	s.logger.WarnContext(ctx, "login failed", "username", username, "reason", reason)
	s.publish(ctx, events.NewLoginEvent(false, 0, username))
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
