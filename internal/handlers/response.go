package handlers

import (
	"encoding/json"
	"net/http"

	"pka-index-backend/internal/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// NotFound is the router fallback for unmatched paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	apierror.Write(w, r, apierror.RouteNotFound())
}

// MethodNotAllowed answers like NotFound: the surface is read-only and no
// other method is routed.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apierror.Write(w, r, apierror.RouteNotFound())
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
