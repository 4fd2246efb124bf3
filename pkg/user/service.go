package user

import (
	"errors"
	"fmt"
	"time"

	"adminauth/pkg/claims"

	jwt "github.com/dgrijalva/jwt-go"
)

type ServiceInterface interface {
	Login(username, password string) (*claims.Claims, error)
}

type Service struct {
	Repo  Repository
	TTL   time.Duration
	Clock func() time.Time
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{Repo: repo, TTL: ttl, Clock: time.Now}
}

// Login checks the credentials and returns the claims for a new token.
// Missing and wrong credentials are reported as distinct errors, but callers
// must not reveal which one occurred.
func (s *Service) Login(username, password string) (*claims.Claims, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.Repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if u.Password != password {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	return &claims.Claims{
		UserID:   u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.TTL).Unix(),
		},
	}, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}
