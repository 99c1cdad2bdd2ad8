package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/WildTrails/WT-Backend/internal/apperror"
)

type envelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// RespondData writes a success envelope: {"status":"success","data":{...}}.
func RespondData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, envelope{Status: "success", Data: data})
}

// RespondList is RespondData plus a results count for collection endpoints.
func RespondList(w http.ResponseWriter, code int, results int, data any) {
	writeJSON(w, code, envelope{Status: "success", Results: &results, Data: data})
}

// RespondError is the single translation point from the error taxonomy to an
// HTTP response. 4xx errors report status "fail", 5xx "error". Unclassified
// errors are logged and never shown to the client verbatim.
func RespondError(w http.ResponseWriter, err error) {
	code := apperror.StatusOf(err)
	message := err.Error()
	if !apperror.IsOperational(err) {
		log.Println("unexpected error:", err)
		message = "Something went very wrong!"
	}

	status := "error"
	if code >= 400 && code < 500 {
		status = "fail"
	}
	writeJSON(w, code, envelope{Status: status, Message: message})
}

func writeJSON(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("failed to encode response:", err)
	}
}
