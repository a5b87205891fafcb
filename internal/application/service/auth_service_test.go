package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/pkg/utils"
)

type countingSweeper struct {
	calls int
	err   error
}

func (s *countingSweeper) SweepExpired(ctx context.Context) (int, error) {
	s.calls++
	return 0, s.err
}

func newAuthFixture(t *testing.T, sweeper MembershipSweeper) (*AuthService, *utils.JWTManager) {
	t.Helper()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	svc, err := NewAuthService([]Credential{
		{Username: "AutoExotic", Password: "admin-pass", Role: enum.RoleAdmin},
		{Username: "counter", Password: "user-pass", Role: enum.RoleStandardUser},
	}, jwtManager, sweeper)
	if err != nil {
		t.Fatal(err)
	}
	return svc, jwtManager
}

func TestLoginIssuesTokenAndSweeps(t *testing.T) {
	sweeper := &countingSweeper{}
	svc, jwtManager := newAuthFixture(t, sweeper)

	out, err := svc.Login(context.Background(), &LoginInput{Username: "AutoExotic", Password: "admin-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !out.Principal.IsAdmin() || out.ExpiresIn != 3600 {
		t.Errorf("unexpected login output %+v", out)
	}
	if sweeper.calls != 1 {
		t.Errorf("sweeps = %d, want 1", sweeper.calls)
	}

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	principal, err := svc.PrincipalFromClaims(claims)
	if err != nil {
		t.Fatal(err)
	}
	if principal.Username != "AutoExotic" || principal.Role != enum.RoleAdmin {
		t.Errorf("unexpected principal %+v", principal)
	}
}

func TestLoginSurvivesSweepFailure(t *testing.T) {
	svc, _ := newAuthFixture(t, &countingSweeper{err: errors.New("db down")})

	out, err := svc.Login(context.Background(), &LoginInput{Username: "counter", Password: "user-pass"})
	if err != nil {
		t.Fatalf("a failing sweep should not block login: %v", err)
	}
	if out.Principal.IsAdmin() {
		t.Error("counter account should not be an admin")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sweeper := &countingSweeper{}
	svc, _ := newAuthFixture(t, sweeper)

	tests := []LoginInput{
		{Username: "AutoExotic", Password: "wrong"},
		{Username: "nobody", Password: "admin-pass"},
		{Username: "autoexotic", Password: "admin-pass"},
	}
	for _, in := range tests {
		input := in
		if _, err := svc.Login(context.Background(), &input); errorCode(err) != http.StatusUnauthorized {
			t.Errorf("Login(%q) = %v, want 401", in.Username, err)
		}
	}
	if sweeper.calls != 0 {
		t.Error("failed logins should not sweep")
	}
}

func TestNewAuthServiceRejectsIncompleteCredentials(t *testing.T) {
	_, err := NewAuthService([]Credential{{Username: "admin"}}, utils.NewJWTManager("s", time.Hour), nil)
	if err == nil {
		t.Error("expected an error for a credential without a password")
	}
}
