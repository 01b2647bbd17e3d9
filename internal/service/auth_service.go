package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"atelier/internal/models"
	"atelier/internal/repository"
)

// DefaultTokenTTL applies when no TTL is configured.
const DefaultTokenTTL = time.Hour

// Host account errors.
var (
	ErrInvalidHost     = errors.New("username and password are required")
	ErrHostTaken       = errors.New("username is already taken")
	ErrHostNotFound    = errors.New("host not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNoSigningKey    = errors.New("auth signing key is not configured")
)

// AuthService registers hosts and issues the tokens that board writes need.
type AuthService struct {
	hosts      repository.HostRepo
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewAuthService(hosts repository.HostRepo, signingKey string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{hosts: hosts, signingKey: []byte(signingKey), ttl: ttl, now: time.Now}
}

// SignUp hashes password and creates a new host.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return 0, ErrInvalidHost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.hosts.Create(ctx, models.Host{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repository.ErrHostExists) {
		return 0, fmt.Errorf("%w: %s", ErrHostTaken, username)
	}
	return id, err
}

// Claims carries the host a token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	HostID int `json:"host_id"`
}

// GenerateToken checks credentials and returns a signed HS256 token.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	h, err := s.hosts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrHostNotFound
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return s.issueToken(h.ID)
}

// ParseToken validates accessToken and returns the host ID inside it.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	if len(s.signingKey) == 0 {
		return 0, ErrNoSigningKey
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.HostID, nil
}

func (s *AuthService) issueToken(hostID int) (string, error) {
	if len(s.signingKey) == 0 {
		return "", ErrNoSigningKey
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		HostID: hostID,
	})
	return token.SignedString(s.signingKey)
}
