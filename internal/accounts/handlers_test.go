package accounts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/WildTrails/WT-Backend/internal/accounts"
)

// patchUser invokes the admin update handler directly with the given id URL
// parameter and raw JSON body.
func patchUser(t *testing.T, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, "/users/"+id, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	accounts.AdminUpdateUserHandler(rec, req)
	return rec
}

const someUserID = "11111111-1111-1111-1111-111111111111"

// TestAdminUpdateUser_RefusesPasswordKeys verifies the admin patch can never
// carry a credential write: password-family keys are a 400, including the
// hash column itself, so nothing bypasses the hash pipeline.
func TestAdminUpdateUser_RefusesPasswordKeys(t *testing.T) {
	for _, key := range []string{"password", "password_confirm", "hashed_password"} {
		rec := patchUser(t, someUserID, `{"`+key+`":"sneaky"}`)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("key %s: expected 400, got %d", key, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "not for password updates") {
			t.Errorf("key %s: expected password-route message, got: %s", key, rec.Body.String())
		}
	}
}

// TestAdminUpdateUser_RejectsUnknownRole verifies the role value is checked
// against the known set before anything is written.
func TestAdminUpdateUser_RejectsUnknownRole(t *testing.T) {
	rec := patchUser(t, someUserID, `{"role":"superuser"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid role") {
		t.Errorf("expected role message, got: %s", rec.Body.String())
	}
}

// TestAdminUpdateUser_InvalidID verifies a malformed id is refused before
// the body is considered.
func TestAdminUpdateUser_InvalidID(t *testing.T) {
	rec := patchUser(t, "not-a-uuid", `{"name":"x"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid ID") {
		t.Errorf("expected invalid-id message, got: %s", rec.Body.String())
	}
}
