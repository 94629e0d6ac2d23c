package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/contexthelpers"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/program"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []slog.Attr{errors.SlogError(err)}
	if clientID := contexthelpers.ClientID(r.Context()); clientID != 0 {
		attrs = append(attrs, slog.Int64("client_id", clientID))
	}
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", attrs...)
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{
		Error:     "internal server error",
		RequestID: contexthelpers.RequestID(r.Context()),
	})
}

// writeServiceError maps the engine's error taxonomy onto HTTP statuses.
func (app *application) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, program.ErrNotFound):
		app.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, program.ErrConfiguration):
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, program.ErrNoCandidates):
		app.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, program.ErrTimeout):
		app.writeJSON(w, r, http.StatusGatewayTimeout, errorResponse{Error: "generation timed out"})
	default:
		app.serverError(w, r, err)
	}
}

// parseClientIDParam parses the "clientID" path parameter. On failure it
// sends a 404 and returns false.
func (app *application) parseClientIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	clientID, err := strconv.ParseInt(r.PathValue("clientID"), 10, 64)
	if err != nil || clientID < 1 {
		http.NotFound(w, r)
		return 0, false
	}
	return clientID, true
}
