package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/WildTrails/WT-Backend/internal/token"
)

// TestIssueAndVerify verifies the round trip: the verified claims carry the
// subject and an issued-at close to now.
func TestIssueAndVerify(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want user-123", claims.Subject)
	}
	if claims.IssuedAt == nil {
		t.Fatal("expected IssuedAt claim")
	}
	if d := time.Since(claims.IssuedAt.Time); d < 0 || d > time.Minute {
		t.Errorf("IssuedAt not close to now: %v", claims.IssuedAt.Time)
	}
}

// TestVerify_Expired verifies a token past its expiry is rejected.
func TestVerify_Expired(t *testing.T) {
	svc := token.NewService("test-secret", -1*time.Minute)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(signed); err == nil {
		t.Error("expected error for expired token")
	}
}

// TestVerify_WrongSecret verifies a token signed with another key fails.
func TestVerify_WrongSecret(t *testing.T) {
	signed, err := token.NewService("secret-a", time.Hour).Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := token.NewService("secret-b", time.Hour).Verify(signed); err == nil {
		t.Error("expected error for wrong signing key")
	}
}

// TestVerify_Tampered verifies a modified payload fails signature checks.
func TestVerify_Tampered(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", signed)
	}
	tampered := parts[0] + "." + flipLastByte(parts[1]) + "." + parts[2]

	if _, err := svc.Verify(tampered); err == nil {
		t.Error("expected error for tampered token")
	}
}

// TestVerify_Garbage verifies junk input fails cleanly.
func TestVerify_Garbage(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func flipLastByte(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[len(b)-1] == 'A' {
		b[len(b)-1] = 'B'
	} else {
		b[len(b)-1] = 'A'
	}
	return string(b)
}
