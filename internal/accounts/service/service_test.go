package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sangamsetu/internal/accounts/models"
	"sangamsetu/internal/accounts/secrets"
	"sangamsetu/internal/accounts/token"
	"sangamsetu/pkg/domain"
	dErrors "sangamsetu/pkg/domain-errors"
	"sangamsetu/pkg/platform/sentinel"
)

const testTokenTTL = time.Hour

func newServiceWithMocks(t *testing.T) (*Service, *MockUserStore, *MockTokenRevoker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := NewMockUserStore(ctrl)
	revoker := NewMockTokenRevoker(ctrl)
	tokens := token.NewService("test-signing-key", "sangamsetu", "sangamsetu")
	svc := NewService(users, tokens, revoker, nil, testTokenTTL)
	return svc, users, revoker
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with role-derived groups", func(t *testing.T) {
		svc, users, _ := newServiceWithMocks(t)

		var created *models.User
		users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.User) error {
				created = u
				return nil
			})

		user, err := svc.Register(ctx, models.RegisterRequest{
			Username: "officer.rao",
			Password: "correct-horse",
			Role:     domain.RolePolice,
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "officer.rao", user.Username)
		assert.Equal(t, domain.RolePolice, user.Role)
		assert.Equal(t, []string{domain.GroupPolice}, user.Groups)
		assert.NotEqual(t, "correct-horse", user.PasswordHash, "password must be stored hashed")
		require.NoError(t, secrets.Verify("correct-horse", user.PasswordHash))
	})

	t.Run("empty role defaults to reporter", func(t *testing.T) {
		svc, users, _ := newServiceWithMocks(t)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		user, err := svc.Register(ctx, models.RegisterRequest{
			Username: "jane",
			Password: "long-enough",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleReporter, user.Role)
		assert.Empty(t, user.Groups)
	})

	t.Run("unknown role is refused", func(t *testing.T) {
		svc, _, _ := newServiceWithMocks(t)
		_, err := svc.Register(ctx, models.RegisterRequest{
			Username: "jane",
			Password: "long-enough",
			Role:     "SUPERVISOR",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("short password is refused", func(t *testing.T) {
		svc, _, _ := newServiceWithMocks(t)
		_, err := svc.Register(ctx, models.RegisterRequest{Username: "jane", Password: "short"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		svc, users, _ := newServiceWithMocks(t)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

		_, err := svc.Register(ctx, models.RegisterRequest{Username: "jane", Password: "long-enough"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	storedUser := func(t *testing.T, password string) *models.User {
		t.Helper()
		hash, err := secrets.Hash(password)
		require.NoError(t, err)
		return &models.User{
			ID:           domain.UserID(uuid.New()),
			Username:     "jane",
			PasswordHash: hash,
			Role:         domain.RoleVolunteer,
			Groups:       []string{domain.GroupVolunteer},
		}
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc, users, _ := newServiceWithMocks(t)
		user := storedUser(t, "correct-horse")
		users.EXPECT().FindByUsername(gomock.Any(), "jane").Return(user, nil)

		result, err := svc.Login(ctx, models.LoginRequest{Username: "jane", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, int(testTokenTTL.Seconds()), result.ExpiresIn)
		assert.Equal(t, "jane", result.Username)
		assert.Equal(t, domain.RoleVolunteer, result.Role)
	})

	t.Run("wrong password is unauthenticated", func(t *testing.T) {
		svc, users, _ := newServiceWithMocks(t)
		users.EXPECT().FindByUsername(gomock.Any(), "jane").Return(storedUser(t, "correct-horse"), nil)

		_, err := svc.Login(ctx, models.LoginRequest{Username: "jane", Password: "wrong"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	t.Run("unknown user gets the same answer as wrong password", func(t *testing.T) {
		svc, users, _ := newServiceWithMocks(t)
		users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, sentinel.ErrNotFound)

		_, err := svc.Login(ctx, models.LoginRequest{Username: "ghost", Password: "whatever"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token until its expiry", func(t *testing.T) {
		svc, _, revoker := newServiceWithMocks(t)
		tokens := token.NewService("test-signing-key", "sangamsetu", "sangamsetu")
		raw, jti, err := tokens.GenerateAccessToken(models.User{
			ID:       domain.UserID(uuid.New()),
			Username: "jane",
			Role:     domain.RoleVolunteer,
		}, testTokenTTL)
		require.NoError(t, err)

		revoker.EXPECT().
			RevokeToken(gomock.Any(), jti, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
				assert.Greater(t, ttl, time.Duration(0))
				assert.LessOrEqual(t, ttl, testTokenTTL)
				return nil
			})

		require.NoError(t, svc.Logout(ctx, raw))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc, _, _ := newServiceWithMocks(t)
		err := svc.Logout(ctx, "not-a-jwt")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})
}
