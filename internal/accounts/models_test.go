package accounts

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// TestNormalizeEmail verifies trimming and case folding, including
// non-ASCII mailboxes.
func TestNormalizeEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Hike@Example.COM ", "hike@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"Grüße@Example.COM", "grüße@example.com"},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestHashResetToken verifies the hash is deterministic, hex and one-way
// distinct from its input.
func TestHashResetToken(t *testing.T) {
	h1 := HashResetToken("abc123")
	h2 := HashResetToken("abc123")

	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
	if h1 == "abc123" {
		t.Error("hash must differ from plaintext")
	}
	if HashResetToken("abc124") == h1 {
		t.Error("different tokens must hash differently")
	}
}

// TestSignupInput_Validate verifies the confirmation, email format and
// password length rules.
func TestSignupInput_Validate(t *testing.T) {
	valid := signupInput{
		Name:            "Trail Tester",
		Email:           "tester@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	mismatch := valid
	mismatch.PasswordConfirm = "pass12345"
	if err := mismatch.Validate(); err == nil {
		t.Error("expected error for mismatched confirmation")
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	if err := badEmail.Validate(); err == nil {
		t.Error("expected error for malformed email")
	}

	short := valid
	short.Password, short.PasswordConfirm = "short", "short"
	if err := short.Validate(); err == nil {
		t.Error("expected error for short password")
	}

	empty := signupInput{}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty input")
	}
}

// TestUser_JSONHidesCredentials verifies that the hash, the soft-delete
// flag and the reset-token fields never serialize, on any read path.
func TestUser_JSONHidesCredentials(t *testing.T) {
	active := true
	expires := time.Now().Add(10 * time.Minute)
	user := User{
		ID:                   "11111111-1111-1111-1111-111111111111",
		Name:                 "Trail Tester",
		Email:                "tester@example.com",
		HashedPassword:       "$2a$12$secret-hash",
		Role:                 RoleUser,
		Active:               &active,
		PasswordResetToken:   "deadbeef",
		PasswordResetExpires: &expires,
	}

	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)

	for _, secret := range []string{"secret-hash", "deadbeef", "hashed_password", "password_reset", "active"} {
		if strings.Contains(out, secret) {
			t.Errorf("serialized user leaks %q: %s", secret, out)
		}
	}
	if !strings.Contains(out, "tester@example.com") {
		t.Errorf("expected public fields present: %s", out)
	}
}

// TestUser_SanitizeClearsPlaintext verifies plaintext inputs are cleared
// before a user struct is echoed back.
func TestUser_SanitizeClearsPlaintext(t *testing.T) {
	user := User{Password: "pass1234", PasswordConfirm: "pass1234"}
	user.Sanitize()

	if user.Password != "" || user.PasswordConfirm != "" {
		t.Error("Sanitize must clear plaintext credential fields")
	}

	raw, _ := json.Marshal(user)
	if strings.Contains(string(raw), "pass1234") {
		t.Errorf("plaintext survived serialization: %s", raw)
	}
}
