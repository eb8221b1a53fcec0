package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	accountsmetrics "sangamsetu/internal/accounts/metrics"
	"sangamsetu/internal/accounts/models"
	"sangamsetu/internal/accounts/secrets"
	"sangamsetu/internal/accounts/token"
	"sangamsetu/pkg/domain"
	dErrors "sangamsetu/pkg/domain-errors"
	"sangamsetu/pkg/platform/sentinel"
	"sangamsetu/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks_test.go -package=service

// UserStore is the persistence contract the service depends on. Interface
// lives here so tests can mock it without touching store packages.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id domain.UserID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenRevoker records revoked token IDs until their natural expiry.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// roleGroups maps each registerable role onto the group memberships it
// implies. Group assignment beyond this mapping is an operator concern.
var roleGroups = map[string][]string{
	domain.RoleAdmin:     {domain.GroupAdmin},
	domain.RolePolice:    {domain.GroupPolice},
	domain.RoleVolunteer: {domain.GroupVolunteer},
	domain.RoleReporter:  nil,
}

// Service owns registration, login, and logout. Token issuance is delegated
// to the token package; password hashing to the secrets package.
type Service struct {
	users    UserStore
	tokens   *token.Service
	revoker  TokenRevoker
	metrics  *accountsmetrics.Metrics
	tokenTTL time.Duration
}

func NewService(users UserStore, tokens *token.Service, revoker TokenRevoker, metrics *accountsmetrics.Metrics, tokenTTL time.Duration) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		revoker:  revoker,
		metrics:  metrics,
		tokenTTL: tokenTTL,
	}
}

// Register creates a user with a hashed password. The role also determines
// the initial group memberships (an ADMIN role grants the ADMIN group, and so
// on); an empty role defaults to reporter.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if len(req.Password) < 8 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}

	role := req.Role
	if role == "" {
		role = domain.RoleReporter
	}
	groups, ok := roleGroups[role]
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown role: "+role)
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           domain.UserID(uuid.New()),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Groups:       append([]string(nil), groups...),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "username is already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.metrics.IncrementUsersRegistered()
	return user, nil
}

// Login verifies credentials and issues an access token. The response echoes
// username and role so clients can render role-dependent UI without decoding
// the JWT.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.TokenResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLoginFailures()
			return models.TokenResult{}, dErrors.New(dErrors.CodeUnauthenticated, "invalid credentials")
		}
		return models.TokenResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := secrets.Verify(req.Password, user.PasswordHash); err != nil {
		s.metrics.IncrementLoginFailures()
		return models.TokenResult{}, dErrors.New(dErrors.CodeUnauthenticated, "invalid credentials")
	}

	accessToken, _, err := s.tokens.GenerateAccessToken(*user, s.tokenTTL)
	if err != nil {
		return models.TokenResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	return models.TokenResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

// Profile returns the stored record for the acting user.
func (s *Service) Profile(ctx context.Context, actor domain.Actor) (*models.User, error) {
	if !actor.Authenticated {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Logout revokes the presented token until its natural expiry so it cannot
// be replayed.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	_, jti, err := s.tokens.ActorFromToken(rawToken)
	if err != nil {
		return err
	}
	expiry, err := s.tokens.Expiry(rawToken)
	if err != nil {
		return err
	}
	ttl := time.Until(expiry)
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	if err := s.revoker.RevokeToken(ctx, jti, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.metrics.IncrementTokensRevoked()
	return nil
}
