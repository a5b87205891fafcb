package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/Shrey0428/ExoticBill/pkg/utils"
)

// Credential is a configured login before its password is hashed
type Credential struct {
	Username string
	Password string
	Role     enum.Role
}

type account struct {
	username     string
	passwordHash string
	role         enum.Role
}

// MembershipSweeper archives lapsed memberships; login runs it as session start
type MembershipSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	accounts   []account
	dummyHash  string
	jwtManager *utils.JWTManager
	sweeper    MembershipSweeper
}

// NewAuthService hashes the configured credentials and creates a new auth service
func NewAuthService(credentials []Credential, jwtManager *utils.JWTManager, sweeper MembershipSweeper) (*AuthService, error) {
	s := &AuthService{
		jwtManager: jwtManager,
		sweeper:    sweeper,
	}

	for _, c := range credentials {
		username := strings.TrimSpace(c.Username)
		if username == "" || c.Password == "" {
			return nil, fmt.Errorf("credential for role %s is incomplete", c.Role)
		}
		hash, err := utils.HashPassword(c.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", username, err)
		}
		s.accounts = append(s.accounts, account{username: username, passwordHash: hash, role: c.Role})
	}

	dummy, err := utils.HashPassword("not-a-real-password")
	if err != nil {
		return nil, err
	}
	s.dummyHash = dummy
	return s, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Principal   *entity.Principal
	AccessToken string
	ExpiresIn   int64
}

// Login checks the credentials and issues a token for the principal.
// A successful login also sweeps expired memberships; a sweep failure does not block the login.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	matched := s.lookup(input.Username)

	hash := s.dummyHash
	if matched != nil {
		hash = matched.passwordHash
	}
	// unknown usernames are compared against a dummy hash
	if !utils.CheckPasswordHash(input.Password, hash) || matched == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	principal := &entity.Principal{Username: matched.username, Role: matched.role}
	token, err := s.jwtManager.GenerateAccessToken(principal.Username, principal.Role.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.sweeper != nil {
		if _, err := s.sweeper.SweepExpired(ctx); err != nil {
			log.Printf("Warning: membership sweep on login of %s failed: %v", principal.Username, err)
		}
	}

	return &LoginOutput{
		Principal:   principal,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

// PrincipalFromClaims rebuilds the principal carried by a validated token
func (s *AuthService) PrincipalFromClaims(claims *utils.JWTClaims) (*entity.Principal, error) {
	acc := s.lookup(claims.Username)
	if acc == nil {
		return nil, apperror.ErrInvalidToken
	}
	return &entity.Principal{Username: acc.username, Role: acc.role}, nil
}

func (s *AuthService) lookup(username string) *account {
	var found *account
	for i := range s.accounts {
		if subtle.ConstantTimeCompare([]byte(s.accounts[i].username), []byte(username)) == 1 {
			found = &s.accounts[i]
		}
	}
	return found
}
