package auth

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	token, err := SignJWT(Claims{Sub: "user-1", Email: "a@x.com", Role: "guest"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Sub != "user-1" {
		t.Fatalf("expected sub user-1, got %s", claims.Sub)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %s", claims.Email)
	}
	if claims.Role != "guest" {
		t.Fatalf("expected role guest, got %s", claims.Role)
	}

	ttl := time.Until(time.Unix(claims.Exp, 0))
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Fatalf("expected ~24h expiry, got %s", ttl)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	token, err := SignJWT(Claims{Sub: "user-1", Role: "guest"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := VerifyJWT(strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := VerifyJWT(token); err == nil {
			t.Fatalf("expected %q to fail verification", token)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour).Unix()
	token, err := SignJWT(Claims{Sub: "user-1", Exp: past})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	_, err = VerifyJWT(token)
	if err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestSignRequiresSubject(t *testing.T) {
	if _, err := SignJWT(Claims{}); err == nil {
		t.Fatalf("expected missing sub to fail")
	}
}

func TestParseRoleDefaultsToGuest(t *testing.T) {
	if got := ParseRole("owner"); got != RoleOwner {
		t.Fatalf("expected owner, got %s", got)
	}
	if got := ParseRole("  Owner "); got != RoleOwner {
		t.Fatalf("expected owner, got %s", got)
	}
	for _, raw := range []string{"guest", "", "admin", "root"} {
		if got := ParseRole(raw); got != RoleGuest {
			t.Fatalf("expected %q to parse as guest, got %s", raw, got)
		}
	}
}
