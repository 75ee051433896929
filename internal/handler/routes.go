package handler

import (
	"net/http"

	"github.com/pawadopt/pawadopt/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Every /api/ route
// passes through the rate limiter and the bearer-token gate; the gate only
// attaches identity, and each handler enforces its own access rules.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, adoptions *service.AdoptionService, limiter *service.TokenBucket) {
	users := NewUserHandler(auth, adoptions)
	dogs := NewDogHandler(adoptions)

	api := http.NewServeMux()
	api.HandleFunc("GET /api", HandleAPIInfo)
	api.HandleFunc("POST /api/users/register", users.HandleRegister)
	api.HandleFunc("POST /api/users/login", users.HandleLogin)
	api.HandleFunc("GET /api/users/notifications", users.HandleNotifications)
	api.HandleFunc("POST /api/dogs/register", dogs.HandleRegisterDog)
	api.HandleFunc("POST /api/dogs/adopt/{dogId}", dogs.HandleAdopt)
	api.HandleFunc("DELETE /api/dogs/{dogId}", dogs.HandleRemove)
	api.HandleFunc("GET /api/dogs/owned", dogs.HandleListOwned)
	api.HandleFunc("GET /api/dogs/adopted", dogs.HandleListAdopted)

	protected := RateLimit(limiter, BearerAuth(auth, api))
	mux.Handle("/api/", protected)
	mux.Handle("/api", protected)

	// Open routes outside the rate limiter.
	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleHome)
}
