package tours_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/tours"
)

// withDryRunDB swaps the shared handle for one that builds SQL without a
// database, restoring the original when the test ends.
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

// TestTopToursHandler_PresetsQuery verifies the alias overrides whatever the
// caller sends: five results, best-rated-then-cheapest first, trimmed fields.
func TestTopToursHandler_PresetsQuery(t *testing.T) {
	withDryRunDB(t)

	req := httptest.NewRequest(http.MethodGet, "/top-5-cheap?limit=1000&sort=price", nil)
	rec := httptest.NewRecorder()
	tours.TopToursHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}

	q := req.URL.Query()
	if q.Get("limit") != "5" {
		t.Errorf("limit = %q, want 5", q.Get("limit"))
	}
	if q.Get("sort") != "-ratings_average,price" {
		t.Errorf("sort = %q, want -ratings_average,price", q.Get("sort"))
	}
	if q.Get("fields") == "" {
		t.Error("expected a field projection to be preset")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "success" {
		t.Errorf("status = %v, want success", body["status"])
	}
}
