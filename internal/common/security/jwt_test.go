package security

import (
	"context"
	"testing"

	"itemtrack/internal/platform/config"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: []byte("test-secret")}
	InitJWT()
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	initTestJWT(t)

	userID := "user-123"
	tok, err := GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	decoded, err := TokenAuth.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	claims, err := decoded.AsMap(context.Background())
	if err != nil {
		t.Fatalf("AsMap error: %v", err)
	}

	got, err := SubjectIDFromClaims(claims)
	if err != nil {
		t.Fatalf("SubjectIDFromClaims error: %v", err)
	}
	if got != userID {
		t.Fatalf("subject id mismatch: got %q want %q", got, userID)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	initTestJWT(t)

	tok, err := GenerateToken("u1")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	config.AppConfig = &config.Config{JWTKey: []byte("another-secret")}
	InitJWT()

	if _, err := TokenAuth.Decode(tok); err == nil {
		t.Fatalf("expected error for token signed with different key, got nil")
	}
}

func TestDecode_Malformed(t *testing.T) {
	initTestJWT(t)

	if _, err := TokenAuth.Decode("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestSubjectIDFromClaims_Missing(t *testing.T) {
	if _, err := SubjectIDFromClaims(map[string]interface{}{}); err == nil {
		t.Fatalf("expected error for missing user_id claim, got nil")
	}
	if _, err := SubjectIDFromClaims(map[string]interface{}{"user_id": 42}); err == nil {
		t.Fatalf("expected error for non-string user_id claim, got nil")
	}
}
