package handler

import "net/http"

// HandleHome serves the open landing route.
// GET /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Welcome to the open route"))
}

// HandleAPIInfo identifies the API to unauthenticated callers.
// GET /api
func HandleAPIInfo(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "This is a response from the API for secured Dog Adoption Platform app")
}
