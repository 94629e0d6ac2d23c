package main

import (
	"net/http"
	"time"
)

func (app *application) routes(generationTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	var (
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(
				app.timeout(generationTimeout, next))))
		}
	)

	mux.Handle("POST /api/clients/{clientID}/programs", api(http.HandlerFunc(app.programGeneratePOST)))
	mux.Handle("POST /api/clients/{clientID}/sessions", api(http.HandlerFunc(app.sessionGeneratePOST)))
	mux.Handle("POST /api/clients/{clientID}/logs", api(http.HandlerFunc(app.workoutLogPOST)))
	mux.Handle("GET /api/clients/{clientID}", api(http.HandlerFunc(app.clientGET)))
	mux.Handle("PUT /api/clients/{clientID}", api(http.HandlerFunc(app.clientPUT)))

	mux.Handle("GET /api/exercises", api(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthyGET)))

	return mux
}
