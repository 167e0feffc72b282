package auth

import (
	"testing"
	"time"

	"hrms/internal/domain/errs"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	actor := Actor{UserID: 7, Role: RoleHR, EmployeeID: 21}

	token, err := GenerateToken(secret, actor, time.Hour)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 7 || claims.Role != RoleHR || claims.EmployeeID != 21 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", Actor{UserID: 1, Role: RoleAdmin}, -time.Minute)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	_, err = ParseToken("secret", token)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if errs.KindOf(err) != errs.Unauthenticated {
		t.Fatalf("expected unauthenticated kind, got %v", errs.KindOf(err))
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Actor{UserID: 1, Role: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckPassword(hash, "hunter2-but-longer"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
