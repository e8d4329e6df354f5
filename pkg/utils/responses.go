package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every JSON endpoint answers with. Errors holds
// per-field messages on validation failures.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func succeed(w http.ResponseWriter, code int, message string, data any) {
	writeEnvelope(w, code, Response{Status: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, code int, message string) {
	writeEnvelope(w, code, Response{Message: message})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	succeed(w, http.StatusOK, message, data)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	succeed(w, http.StatusCreated, message, data)
}

// ResponseBadRequest answers 400; fields is usually the map from
// ValidateStruct and may be nil.
func ResponseBadRequest(w http.ResponseWriter, message string, fields any) {
	writeEnvelope(w, http.StatusBadRequest, Response{Message: message, Errors: fields})
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, message)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, message)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, message)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, message)
}

func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	fail(w, http.StatusTooManyRequests, message)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, message)
}

// ResponseServiceUnavailable keeps data so health probes can report which
// dependency is down.
func ResponseServiceUnavailable(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusServiceUnavailable, Response{Message: message, Data: data})
}
