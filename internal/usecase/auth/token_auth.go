package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
	"github.com/alliyn/alliyn-backend/internal/usecase/account"
	"github.com/golang-jwt/jwt/v5"
)

type UserProvider interface {
	GetOrCreateUser(ctx context.Context, req *account.CreateUserRequest) (*domain.User, bool, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type TokenAuthUseCase struct {
	users     UserProvider
	jwtSecret string
	expiry    time.Duration
	clock     clock.Clock
}

func NewTokenAuthUseCase(users UserProvider, jwtSecret string, expiry time.Duration, clk clock.Clock) *TokenAuthUseCase {
	return &TokenAuthUseCase{
		users:     users,
		jwtSecret: jwtSecret,
		expiry:    expiry,
		clock:     clk,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// AuthenticateTest signs in by email alone, creating the account on first
// use. Development only.
func (uc *TokenAuthUseCase) AuthenticateTest(ctx context.Context, req *account.CreateUserRequest) (*AuthResponse, error) {
	user, created, err := uc.users.GetOrCreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: created,
	}, nil
}

func (uc *TokenAuthUseCase) issueToken(userID string) (string, time.Time, error) {
	now := uc.clock.Now()
	expiresAt := now.Add(uc.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken checks the signature and expiry and returns the user id.
func (uc *TokenAuthUseCase) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	}, jwt.WithTimeFunc(uc.clock.Now))

	if err != nil || !token.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	if _, err := uc.users.GetUser(ctx, claims.Subject); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}
	return claims.Subject, nil
}
