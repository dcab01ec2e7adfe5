package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/roamplan/roamplan/internal/auth"
)

func newTestService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-signing-key",
		Issuer:     "https://api.roamplan.test",
		Audience:   "roamplan-api",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestService()

	token, expiresAt, err := service.GenerateAccessToken("usr_123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("expected expiry in the future")
	}

	claims, err := service.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "usr_123" {
		t.Errorf("user ID = %q, want usr_123", claims.UserID)
	}
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("not-a-token")
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTService_RejectsWrongKey(t *testing.T) {
	token, _, err := newTestService().GenerateAccessToken("usr_123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := auth.NewJWTService(auth.JWTConfig{SigningKey: "different-key"})
	if _, err := other.ValidateAccessToken(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
