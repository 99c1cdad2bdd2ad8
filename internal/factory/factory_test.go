package factory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/factory"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// withDryRunDB swaps the shared handle for one that builds SQL without a
// database, restoring the original when the test ends. Counts stay zero, so
// every explicit page is past the end of the matching set.
func withDryRunDB(t *testing.T) {
	t.Helper()

	dry, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	previous := db.DB
	db.DB = dry
	t.Cleanup(func() { db.DB = previous })
}

// withID attaches an id URL parameter the way the router would.
func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestGetAll_ExplicitPageOverrun verifies a page explicitly requested past
// the end of the matching set is a 404 with its own message.
func TestGetAll_ExplicitPageOverrun(t *testing.T) {
	withDryRunDB(t)

	req := httptest.NewRequest(http.MethodGet, "/widgets?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	factory.GetAll[widget]()(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "This page does not exist") {
		t.Errorf("expected overrun message, got: %s", rec.Body.String())
	}
}

// TestGetAll_ImplicitPageNeverOverruns verifies an omitted page parameter
// returns an empty list instead of triggering the overrun check.
func TestGetAll_ImplicitPageNeverOverruns(t *testing.T) {
	withDryRunDB(t)

	req := httptest.NewRequest(http.MethodGet, "/widgets?limit=10", nil)
	rec := httptest.NewRecorder()
	factory.GetAll[widget]()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"success"`) {
		t.Errorf("expected success envelope, got: %s", rec.Body.String())
	}
}

// TestGetOne_InvalidID verifies a malformed id is refused before any lookup
// happens.
func TestGetOne_InvalidID(t *testing.T) {
	req := withID(httptest.NewRequest(http.MethodGet, "/widgets/nope", nil), "nope")
	rec := httptest.NewRecorder()
	factory.GetOne[widget]()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid ID") {
		t.Errorf("expected invalid-id message, got: %s", rec.Body.String())
	}
}

// TestDeleteOne_InvalidID verifies the same guard on the delete path.
func TestDeleteOne_InvalidID(t *testing.T) {
	req := withID(httptest.NewRequest(http.MethodDelete, "/widgets/123", nil), "123")
	rec := httptest.NewRecorder()
	factory.DeleteOne[widget]()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestCreateOne_InvalidBody verifies a body that is not JSON is a 400, not
// a 500.
func TestCreateOne_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	factory.CreateOne[widget]()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid data sent!") {
		t.Errorf("expected invalid-data message, got: %s", rec.Body.String())
	}
}

// TestUpdateOne_InvalidID verifies the patch path refuses malformed ids
// before reading the body.
func TestUpdateOne_InvalidID(t *testing.T) {
	req := withID(httptest.NewRequest(http.MethodPatch, "/widgets/xyz", strings.NewReader("{}")), "xyz")
	rec := httptest.NewRecorder()
	factory.UpdateOne[widget]()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
