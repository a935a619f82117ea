package helpers

import (
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

const testSecret = "test-secret-key-that-is-at-least-32-chars"

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := m.GenerateToken(1, "testuser")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("UserID = %d, want 1", claims.UserID)
	}
	if claims.Username != "testuser" {
		t.Errorf("Username = %q, want %q", claims.Username, "testuser")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("missing exp/iat claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want %v", got, time.Hour)
	}
}

func TestJWTParseWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testSecret, time.Hour).GenerateToken(1, "testuser")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewJWTManager("another-secret-key-of-sufficient-length", time.Hour)
	if _, err := other.ParseToken(token); !errors.Is(err, entity.ErrToken) {
		t.Errorf("ParseToken with wrong secret: err = %v, want ErrToken", err)
	}
}

func TestJWTParseExpired(t *testing.T) {
	m := NewJWTManager(testSecret, -time.Minute)

	token, err := m.GenerateToken(1, "testuser")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, entity.ErrToken) {
		t.Errorf("ParseToken on expired token: err = %v, want ErrToken", err)
	}
}

func TestJWTParseMalformed(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	for _, token := range []string{"", "invalid-token", "a.b.c"} {
		if _, err := m.ParseToken(token); !errors.Is(err, entity.ErrToken) {
			t.Errorf("ParseToken(%q): err = %v, want ErrToken", token, err)
		}
	}
}
