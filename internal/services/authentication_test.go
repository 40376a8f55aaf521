package services

import (
	"testing"
	"time"

	"ecospin/internal/models"
)

func TestAuthenticationRoundTrip(t *testing.T) {
	authentication, err := NewAuthentication("test-secret")
	if err != nil {
		t.Fatalf("new authentication: %v", err)
	}

	user := &models.User{
		ID:       42,
		Username: "lea",
		Email:    "lea@example.org",
		Role:     models.RoleAdmin,
	}

	token, err := authentication.CreateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	auth, err := authentication.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if auth.ID != user.ID || auth.Username != user.Username || auth.Role != models.RoleAdmin {
		t.Errorf("claims mismatch: %+v", auth)
	}
}

func TestAuthenticationRejectsExpiredAndForeignTokens(t *testing.T) {
	authentication, _ := NewAuthentication("test-secret")
	other, _ := NewAuthentication("other-secret")

	user := &models.User{ID: 1, Username: "sam"}

	expired, err := authentication.CreateToken(user, -time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if _, err := authentication.Validate(expired); err == nil {
		t.Errorf("expired token should not validate")
	}

	foreign, err := other.CreateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if _, err := authentication.Validate(foreign); err == nil {
		t.Errorf("token signed with another secret should not validate")
	}
}

func TestNewAuthenticationRequiresSecret(t *testing.T) {
	if _, err := NewAuthentication(""); err == nil {
		t.Errorf("empty secret should be rejected")
	}
}
