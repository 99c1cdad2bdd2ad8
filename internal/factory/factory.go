// Package factory provides the generic CRUD handlers shared by every
// resource module. Each handler is a generic function instantiated per
// model type; the model's GORM metadata supplies table and column names,
// so there is no runtime type inspection.
package factory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/WildTrails/WT-Backend/internal/apperror"
	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/query"
	"github.com/WildTrails/WT-Backend/internal/utils"
)

// Scope is a read-path predicate a module merges into every lookup of its
// collection, e.g. the accounts module hiding deactivated users.
type Scope = func(*gorm.DB) *gorm.DB

// GetAll lists a collection through the query pipeline: filter, sort,
// field-limit, paginate, in that order. A page explicitly requested past the
// end of the matching set is a 404; an implicit overrun just returns an
// empty list.
func GetAll[T any](scopes ...Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var model T
		base := db.DB.WithContext(r.Context()).Model(&model).Scopes(scopes...)
		f := query.New(base, r.URL.Query()).Apply()

		if f.PageExplicit() {
			var total int64
			if err := f.Filtered().Count(&total).Error; err != nil {
				utils.RespondError(w, err)
				return
			}
			if int64(f.Skip()) >= total {
				utils.RespondError(w, apperror.NotFound("This page does not exist"))
				return
			}
		}

		var docs []T
		if err := f.Query().Find(&docs).Error; err != nil {
			utils.RespondError(w, err)
			return
		}

		utils.RespondList(w, http.StatusOK, len(docs), map[string]any{"data": docs})
	}
}

// GetOne fetches a single document by its id URL parameter.
func GetOne[T any](scopes ...Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			utils.RespondError(w, err)
			return
		}

		var doc T
		if err := db.DB.WithContext(r.Context()).Scopes(scopes...).First(&doc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(w, apperror.NotFound("No document found with that ID"))
				return
			}
			utils.RespondError(w, err)
			return
		}

		utils.RespondData(w, http.StatusOK, map[string]any{"data": doc})
	}
}

// CreateOne decodes the request body into a fresh document and persists it.
func CreateOne[T any]() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc T
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			utils.RespondError(w, apperror.Validation("Invalid data sent!"))
			return
		}

		if err := db.DB.WithContext(r.Context()).Create(&doc).Error; err != nil {
			utils.RespondError(w, translateWriteError(err))
			return
		}

		utils.RespondData(w, http.StatusCreated, map[string]any{"data": doc})
	}
}

// UpdateOne applies a partial patch to an existing document and returns the
// updated row.
func UpdateOne[T any]() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			utils.RespondError(w, err)
			return
		}

		var doc T
		tx := db.DB.WithContext(r.Context())
		if err := tx.First(&doc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(w, apperror.NotFound("No document found with that ID"))
				return
			}
			utils.RespondError(w, err)
			return
		}

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			utils.RespondError(w, apperror.Validation("Invalid data sent!"))
			return
		}
		delete(patch, "id")

		if len(patch) > 0 {
			if err := tx.Model(&doc).Updates(patch).Error; err != nil {
				utils.RespondError(w, translateWriteError(err))
				return
			}
			// Re-read so the response carries the row as stored.
			if err := tx.First(&doc, "id = ?", id).Error; err != nil {
				utils.RespondError(w, err)
				return
			}
		}

		utils.RespondData(w, http.StatusOK, map[string]any{"data": doc})
	}
}

// DeleteOne removes a document; a miss is a 404, success is an empty 204.
func DeleteOne[T any]() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			utils.RespondError(w, err)
			return
		}

		var model T
		result := db.DB.WithContext(r.Context()).Delete(&model, "id = ?", id)
		if result.Error != nil {
			utils.RespondError(w, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondError(w, apperror.NotFound("No document found with that ID"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func parseID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperror.Validation("Invalid ID: " + raw)
	}
	return id.String(), nil
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.Validation("Duplicate field value. Please use another value!")
		case "23502", "23514":
			return apperror.Validation("Invalid data sent!")
		}
	}
	return err
}
