package main

import (
	"net/http"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/contexthelpers"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/program"
)

type generateProgramRequest struct {
	Weeks     int    `json:"weeks"`
	StartDate string `json:"start_date,omitempty"`
}

func (app *application) programGeneratePOST(w http.ResponseWriter, r *http.Request) {
	clientID, ok := app.parseClientIDParam(w, r)
	if !ok {
		return
	}
	req := generateProgramRequest{Weeks: 1}
	if r.ContentLength > 0 && !app.readJSON(w, r, &req) {
		return
	}
	var startDate time.Time
	if req.StartDate != "" {
		var err error
		if startDate, err = time.Parse(time.DateOnly, req.StartDate); err != nil {
			app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "start_date must be YYYY-MM-DD"})
			return
		}
	}

	ctx := contexthelpers.SetClientID(r, clientID).Context()
	prog, err := app.programService.GenerateProgram(ctx, clientID, req.Weeks, startDate)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, prog)
}

func (app *application) sessionGeneratePOST(w http.ResponseWriter, r *http.Request) {
	clientID, ok := app.parseClientIDParam(w, r)
	if !ok {
		return
	}
	ctx := contexthelpers.SetClientID(r, clientID).Context()
	day, err := app.programService.GenerateSingleSession(ctx, clientID)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, day)
}

type logWorkoutRequest struct {
	Date      string                   `json:"date"`
	Exercises []program.LoggedExercise `json:"exercises"`
}

func (app *application) workoutLogPOST(w http.ResponseWriter, r *http.Request) {
	clientID, ok := app.parseClientIDParam(w, r)
	if !ok {
		return
	}
	var req logWorkoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	workout := program.LoggedWorkout{Exercises: req.Exercises}
	if req.Date != "" {
		var err error
		if workout.Date, err = time.Parse(time.DateOnly, req.Date); err != nil {
			app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
	}

	ctx := contexthelpers.SetClientID(r, clientID).Context()
	if err := app.programService.LogWorkout(ctx, clientID, workout); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) clientGET(w http.ResponseWriter, r *http.Request) {
	clientID, ok := app.parseClientIDParam(w, r)
	if !ok {
		return
	}
	profile, err := app.programService.GetClient(r.Context(), clientID)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

func (app *application) clientPUT(w http.ResponseWriter, r *http.Request) {
	clientID, ok := app.parseClientIDParam(w, r)
	if !ok {
		return
	}
	var profile program.ClientProfile
	if !app.readJSON(w, r, &profile) {
		return
	}
	profile.ID = clientID
	if err := app.programService.UpdateClient(r.Context(), profile); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.programService.ListExercises(r.Context())
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

func (app *application) healthyGET(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
