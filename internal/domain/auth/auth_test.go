package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("ChangeMe123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := CheckPassword(hash, "ChangeMe123!"); err != nil {
		t.Fatalf("expected password to verify: %v", err)
	}
	if err := CheckPassword(hash, "wrong-password"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	claims := Claims{UserID: "u-1", Role: RoleWorker, SubjectID: "w-1"}
	token, err := GenerateToken("secret", claims, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != "u-1" || parsed.Role != RoleWorker || parsed.SubjectID != "w-1" {
		t.Fatalf("unexpected claims: %+v", parsed)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u-1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSessionValid(t *testing.T) {
	if (Session{}).Valid() {
		t.Fatal("empty session should be invalid")
	}
	if !(Session{UserID: "u-1", Role: RoleBusiness}).Valid() {
		t.Fatal("populated session should be valid")
	}
}
