package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-Id"

// correlationID echoes the caller's X-Correlation-Id or assigns a new one.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(correlationHeader))
		if id == "" {
			id = newCorrelationID()
		}
		w.Header().Set(correlationHeader, id)
		next.ServeHTTP(w, r)
	})
}

// cors allows any origin. There is no authentication, so no credentials are
// allowed either.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-Correlation-Id")
		h.Set("Access-Control-Expose-Headers", correlationHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
