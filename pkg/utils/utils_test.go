package utils

import (
	"strings"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("AutoExotic", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error: %v", err)
	}
	if claims.Username != "AutoExotic" || claims.Role != "admin" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour).GenerateAccessToken("User", "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTManager("two", time.Hour).ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, err := m.GenerateAccessToken("User", "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("User123")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if strings.Contains(hash, "User123") {
		t.Error("hash contains the plaintext")
	}
	if !CheckPasswordHash("User123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("user123", hash) {
		t.Error("wrong password accepted")
	}
}

func TestBillNumber(t *testing.T) {
	if got := BillNumber(7); got != "BILL-000007" {
		t.Errorf("BillNumber(7) = %q", got)
	}
}
