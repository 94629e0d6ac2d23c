// Package contexthelpers provides typed accessors for request-scoped values.
package contexthelpers

import (
	"context"
	"net/http"
)

type contextKey string

const (
	requestIDContextKey = contextKey("requestID")
	clientIDContextKey  = contextKey("clientID")
)

// SetRequestID attaches the request ID to the request context.
func SetRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDContextKey, requestID))
}

// RequestID returns the request ID or the empty string when unset.
func RequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(requestIDContextKey).(string)
	if !ok {
		return ""
	}
	return requestID
}

// SetClientID attaches the client ID addressed by the request to its context.
func SetClientID(r *http.Request, clientID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), clientIDContextKey, clientID))
}

// ClientID returns the client ID or zero when unset.
func ClientID(ctx context.Context) int64 {
	clientID, ok := ctx.Value(clientIDContextKey).(int64)
	if !ok {
		return 0
	}
	return clientID
}
