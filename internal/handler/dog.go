package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pawadopt/pawadopt/internal/domain"
	"github.com/pawadopt/pawadopt/internal/service"
)

// DogHandler handles the dog lifecycle endpoints.
type DogHandler struct {
	adoptions *service.AdoptionService
}

// NewDogHandler creates a new DogHandler.
func NewDogHandler(adoptions *service.AdoptionService) *DogHandler {
	return &DogHandler{adoptions: adoptions}
}

// HandleRegisterDog lists a new dog for adoption, owned by the caller.
// POST /api/dogs/register
// Request:  {"name":"...","description":"..."}
// Response: 201 {"message":"Dog registered successfully","dog":{...}}
//
// An unauthenticated caller gets a 400 here rather than a 401. That status
// is part of the observed API contract and is kept for compatibility.
func (h *DogHandler) HandleRegisterDog(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusBadRequest, "Unauthorized: No user ID found")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dog, err := h.adoptions.RegisterDog(r.Context(), identity.UserID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("register dog", "error", err)
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Dog registered successfully",
		"dog":     toDogDTO(dog),
	})
}

// HandleAdopt adopts the dog named in the path.
// POST /api/dogs/adopt/{dogId}
// Response: 200 {"message":"Thank you for adopting ...","dog":{...}}
func (h *DogHandler) HandleAdopt(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}

	dog, err := h.adoptions.AdoptDog(r.Context(), identity.UserID, r.PathValue("dogId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Dog not found")
		case errors.Is(err, domain.ErrAlreadyAdopted):
			writeMessage(w, http.StatusBadRequest, "This dog is already adopted")
		case errors.Is(err, domain.ErrOwnDog):
			writeMessage(w, http.StatusBadRequest, "You can not adopt your own dog")
		default:
			slog.Error("adopt dog", "error", err)
			writeServerError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Thank you for adopting %s! We hope you enjoy your new companion.", dog.Name),
		"dog":     toDogDTO(dog),
	})
}

// HandleRemove deletes an unadopted dog owned by the caller.
// DELETE /api/dogs/{dogId}
// Response: 200 {"message":"dog removed successfully"}
func (h *DogHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}

	err := h.adoptions.RemoveDog(r.Context(), identity.UserID, r.PathValue("dogId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, "Invalid Dog ID")
		case errors.Is(err, domain.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "No dog or you do not have permission to remove this dog")
		case errors.Is(err, domain.ErrAlreadyAdopted):
			writeMessage(w, http.StatusBadRequest, "Adopted dog can not be removed")
		default:
			slog.Error("remove dog", "error", err)
			writeServerError(w, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "dog removed successfully")
}

// HandleListOwned lists the caller's registered dogs with optional status
// filtering and pagination.
// GET /api/dogs/owned?status=AVAILABLE&page=1&limit=10
func (h *DogHandler) HandleListOwned(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}

	page, limit := pagination(r)
	dogs, err := h.adoptions.ListOwnedDogs(r.Context(), identity.UserID, r.URL.Query().Get("status"), page, limit)
	if err != nil {
		slog.Error("list owned dogs", "error", err)
		writeServerError(w, err)
		return
	}

	if len(dogs) == 0 {
		writeMessage(w, http.StatusOK, "You don't owned any dogs")
		return
	}
	writeJSON(w, http.StatusOK, toDogDTOs(dogs))
}

// HandleListAdopted lists the dogs the caller has adopted, paginated.
// GET /api/dogs/adopted?page=1&limit=10
func (h *DogHandler) HandleListAdopted(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: no token provided")
		return
	}

	page, limit := pagination(r)
	dogs, err := h.adoptions.ListAdoptedDogs(r.Context(), identity.UserID, page, limit)
	if err != nil {
		slog.Error("list adopted dogs", "error", err)
		writeServerError(w, err)
		return
	}

	if len(dogs) == 0 {
		writeMessage(w, http.StatusOK, "You have not adopted any dogs")
		return
	}
	writeJSON(w, http.StatusOK, toDogDTOs(dogs))
}

// pagination reads page and limit query parameters, falling back to the
// service defaults on missing or unparsable values.
func pagination(r *http.Request) (page, limit int) {
	page = service.DefaultPage
	limit = service.DefaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	return page, limit
}

// writeServerError surfaces an unexpected failure with the underlying
// message attached, matching the API's 500 body shape.
func writeServerError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"message": "Server error",
		"error":   err.Error(),
	})
}
