package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/softhub/internal/auth"
	"github.com/kailas-cloud/softhub/internal/domain"
	domadmin "github.com/kailas-cloud/softhub/internal/domain/admin"
	"github.com/kailas-cloud/softhub/internal/metrics"
)

// Session is the outcome of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     domadmin.User
}

// Service authenticates admins and manages their session tokens.
type Service struct {
	repo        Repository
	revocations Revocations
	tokens      TokenIssuer
	cost        int
	logger      *zap.Logger
	now         func() time.Time

	attempts    LoginAttempts
	maxFailures int64

	dummyOnce sync.Once
	dummyHash string
}

// New creates an admin service. cost is the bcrypt work factor for new passwords.
func New(repo Repository, revocations Revocations, tokens TokenIssuer, cost int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		revocations: revocations,
		tokens:      tokens,
		cost:        cost,
		logger:      logger,
		now:         time.Now,
	}
}

// WithLoginThrottle locks an email out once it reaches maxFailures failed
// logins inside the attempts window. A non-positive maxFailures disables it.
func (s *Service) WithLoginThrottle(attempts LoginAttempts, maxFailures int) *Service {
	if maxFailures > 0 {
		s.attempts = attempts
		s.maxFailures = int64(maxFailures)
	}
	return s
}

// Authenticate checks credentials and issues a session token.
// Unknown email and wrong password both return domain.ErrInvalidCredentials.
// A locked-out email returns domain.ErrTooManyAttempts without checking the password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Session, error) {
	email = domadmin.NormalizeEmail(email)

	if err := s.checkLockout(ctx, email); err != nil {
		return Session{}, err
	}

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Unknown emails still pay for one bcrypt comparison.
		auth.VerifyPassword(s.placeholderHash(), password)
		return Session{}, s.loginFailed(ctx, email, "unknown email")
	case err != nil:
		return Session{}, fmt.Errorf("get admin: %w", err)
	}

	if !auth.VerifyPassword(u.PasswordHash(), password) {
		return Session{}, s.loginFailed(ctx, email, "wrong password")
	}

	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, email); err != nil {
			s.logger.Warn("Failed to reset login attempts", zap.String("email", email), zap.Error(err))
		}
	}

	token, claims, err := s.tokens.Issue(u.ID(), u.Email())
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	if err := s.repo.TouchLastLogin(ctx, u.Email(), s.now()); err != nil {
		s.logger.Warn("Failed to record last login", zap.String("email", u.Email()), zap.Error(err))
	}

	metrics.AdminLoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Admin login", zap.String("admin_id", u.ID()), zap.String("email", u.Email()))

	return Session{Token: token, ExpiresAt: claims.Expiry(), Admin: u}, nil
}

func (s *Service) checkLockout(ctx context.Context, email string) error {
	if s.attempts == nil {
		return nil
	}
	n, err := s.attempts.Failures(ctx, email)
	if err != nil {
		return fmt.Errorf("read login attempts: %w", err)
	}
	if n >= s.maxFailures {
		metrics.AdminLoginsTotal.WithLabelValues("locked").Inc()
		s.logger.Warn("Admin login locked out", zap.String("email", email), zap.Int64("failures", n))
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (s *Service) loginFailed(ctx context.Context, email, reason string) error {
	metrics.AdminLoginsTotal.WithLabelValues("failure").Inc()
	s.logger.Warn("Admin login failed", zap.String("email", email), zap.String("reason", reason))
	if s.attempts != nil {
		if _, err := s.attempts.Record(ctx, email); err != nil {
			s.logger.Warn("Failed to record login attempt", zap.String("email", email), zap.Error(err))
		}
	}
	return domain.ErrInvalidCredentials
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		h, err := auth.HashPassword(uuid.NewString(), s.cost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// Verify validates a session token and rejects revoked ones.
func (s *Service) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
	}
	return claims, nil
}

// Logout revokes the token until it would have expired.
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	ttl := claims.Expiry().Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.TokenID(), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info("Admin logout", zap.String("admin_id", claims.AdminID))
	return nil
}

// EnsureBootstrapAdmin creates the first admin account when none exists.
// Returns true if an account was created.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, email, password, name string) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if email == "" || password == "" {
		s.logger.Warn("No admin account exists and no bootstrap credentials are configured")
		return false, nil
	}

	hash, err := auth.HashPassword(password, s.cost)
	if err != nil {
		return false, fmt.Errorf("hash bootstrap password: %w", err)
	}
	u, err := domadmin.New(uuid.NewString(), email, name, hash, s.now())
	if err != nil {
		return false, fmt.Errorf("validate bootstrap admin: %w", err)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create bootstrap admin: %w", err)
	}
	s.logger.Info("Bootstrap admin created", zap.String("email", u.Email()))
	return true, nil
}
