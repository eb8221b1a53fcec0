// Package token issues and validates the HS256 access tokens used by the API.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sangamsetu/internal/accounts/models"
	"sangamsetu/pkg/domain"
	dErrors "sangamsetu/pkg/domain-errors"
)

// Claims carries the identity attributes the policy layer needs. Role and
// groups are embedded so authorization never requires a user-store lookup.
type Claims struct {
	UserID    string   `json:"user_id"`
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	Groups    []string `json:"groups,omitempty"`
	Superuser bool     `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewService(signingKey string, issuer string, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken mints a signed token for the user. The returned jti
// identifies the token for revocation on logout.
func (s *Service) GenerateAccessToken(user models.User, expiresIn time.Duration) (token string, jti string, err error) {
	jti = uuid.NewString()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		Groups:    user.Groups,
		Superuser: user.Superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        jti,
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", "", err
	}
	return signedToken, jti, nil
}

// ValidateToken parses and verifies a token string.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthenticated, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, "invalid token claims")
	}

	return claims, nil
}

// ActorFromToken converts a valid token into the request actor. Implements
// the auth middleware's TokenValidator.
func (s *Service) ActorFromToken(tokenString string) (domain.Actor, string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.Anonymous(), "", err
	}
	userID, err := domain.ParseUserID(claims.UserID)
	if err != nil {
		return domain.Anonymous(), "", dErrors.New(dErrors.CodeUnauthenticated, "invalid token claims")
	}
	return domain.Actor{
		ID:            userID,
		Username:      claims.Username,
		Role:          claims.Role,
		Groups:        claims.Groups,
		Superuser:     claims.Superuser,
		Authenticated: true,
	}, claims.ID, nil
}

// Expiry reports a token's expiration time, for sizing revocation TTLs.
func (s *Service) Expiry(tokenString string) (time.Time, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, dErrors.New(dErrors.CodeUnauthenticated, "token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}
