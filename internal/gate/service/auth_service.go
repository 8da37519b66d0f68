package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/razan-ali/petrolube-guardpass/internal/config"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/middleware"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles login and token issuance.
type AuthService struct {
	profiles *repository.ProfileRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates an auth service.
func NewAuthService(profiles *repository.ProfileRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{profiles: profiles, jwtCfg: jwtCfg}
}

// LoginResult carries the issued token alongside the authenticated profile.
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *entity.Profile `json:"profile"`
}

// Login verifies the password and issues a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(profile)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

// Me returns the profile backing a user id from a validated token.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) issueToken(profile *entity.Profile) (string, time.Time, error) {
	now := time.Now()
	expire := s.jwtCfg.AccessTokenExpire
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	expiresAt := now.Add(expire)

	claims := middleware.JWTClaims{
		UserID:     profile.ID,
		Name:       profile.FullName,
		Email:      profile.Email,
		Role:       profile.Role,
		Department: profile.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// HashPassword produces a bcrypt hash for seeding profiles.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
