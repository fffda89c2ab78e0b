package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGate(t *testing.T) {
	gate, err := NewGate("saklain", "admin123")
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}

	cases := []struct {
		user, pass string
		want       bool
	}{
		{"saklain", "admin123", true},
		{"saklain", "admin124", false},
		{"admin", "admin123", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := gate.Check(tc.user, tc.pass); got != tc.want {
			t.Errorf("Check(%q, %q) = %v, want %v", tc.user, tc.pass, got, tc.want)
		}
	}
	if err := gate.Authenticate("saklain", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate err = %v", err)
	}
	if strings.Contains(gate.passwordHash, "admin123") {
		t.Error("password stored in clear")
	}
}

func TestNewGateRequiresCredentials(t *testing.T) {
	if _, err := NewGate("", "x"); err == nil {
		t.Fatal("expected error for empty username")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, err := NewAuthService([]byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	issued, err := svc.GenerateAccessToken("saklain")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(issued.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Username != "saklain" || claims.ID != issued.TokenID {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	svc, _ := NewAuthService([]byte("secret-a"), time.Hour)
	other, _ := NewAuthService([]byte("secret-b"), time.Hour)
	issued, err := other.GenerateAccessToken("saklain")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(issued.AccessToken); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
	if _, err := svc.ValidateToken(""); err == nil {
		t.Fatal("empty token must be rejected")
	}

	expired, _ := NewAuthService([]byte("secret-a"), time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.GenerateAccessToken("saklain")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(old.AccessToken); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestRandomSecret(t *testing.T) {
	a, err := RandomSecret()
	if err != nil {
		t.Fatalf("random secret: %v", err)
	}
	b, _ := RandomSecret()
	if len(a) != 64 || string(a) == string(b) {
		t.Fatalf("unexpected secrets %q %q", a, b)
	}
}
