package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pawadopt/pawadopt/internal/domain"
)

// Pagination defaults and cap for the dog listing endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 2
	MaxLimit     = 100
)

// AdoptionService is the dog lifecycle engine. It enforces the rules around
// registration, adoption, and removal: only owners remove their dogs, a dog
// is adopted at most once, and nobody adopts their own dog. It also keeps
// the user-side back-reference lists and the owner notification log in step
// with the authoritative dog records.
type AdoptionService struct {
	dogs  domain.DogRepository
	users domain.UserRepository
}

// NewAdoptionService creates a new AdoptionService.
func NewAdoptionService(dogs domain.DogRepository, users domain.UserRepository) *AdoptionService {
	return &AdoptionService{dogs: dogs, users: users}
}

// RegisterDog lists a new dog for adoption, owned by the calling user.
func (s *AdoptionService) RegisterDog(ctx context.Context, ownerID int64, name, description string) (*domain.Dog, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	dog := &domain.Dog{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      domain.StatusAvailable,
		OwnerID:     ownerID,
	}

	if err := s.dogs.Create(ctx, dog); err != nil {
		return nil, fmt.Errorf("create dog: %w", err)
	}

	if err := s.users.AppendOwnedDog(ctx, ownerID, dog.ID); err != nil {
		return nil, fmt.Errorf("append owned dog: %w", err)
	}

	return dog, nil
}

// AdoptDog transfers the dog to the adopter. The checks run in order and
// the first failure wins: the dog must exist, must not already be adopted,
// and must not belong to the adopter. The adoption itself is a single
// conditional update in the store, so a race between two adopters resolves
// to exactly one winner.
func (s *AdoptionService) AdoptDog(ctx context.Context, adopterID int64, dogID string) (*domain.Dog, error) {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get dog: %w", err)
	}

	if dog.Adopted() {
		return nil, domain.ErrAlreadyAdopted
	}
	if dog.OwnerID == adopterID {
		return nil, domain.ErrOwnDog
	}

	if err := s.dogs.Adopt(ctx, dogID, adopterID); err != nil {
		return nil, err
	}
	dog.AdoptedBy = &adopterID
	dog.Status = domain.StatusAdopted

	if err := s.users.AppendAdoptedDog(ctx, adopterID, dogID); err != nil {
		return nil, fmt.Errorf("append adopted dog: %w", err)
	}

	if err := s.notifyOwner(ctx, dog, adopterID); err != nil {
		return nil, err
	}

	return dog, nil
}

// notifyOwner appends a thank-you notification to the original owner's log.
// A missing owner record is skipped silently; the adoption already stands.
func (s *AdoptionService) notifyOwner(ctx context.Context, dog *domain.Dog, adopterID int64) error {
	owner, err := s.users.GetByID(ctx, dog.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Warn("adoption notification skipped, owner record missing",
				"dog_id", dog.ID, "owner_id", dog.OwnerID)
			return nil
		}
		return fmt.Errorf("get original owner: %w", err)
	}

	adopter, err := s.users.GetByID(ctx, adopterID)
	if err != nil {
		return fmt.Errorf("get adopter: %w", err)
	}

	message := fmt.Sprintf("Thank you, %s, for giving %s a loving home. %s has been adopted by %s.",
		owner.Username, dog.Name, dog.Name, adopter.Username)
	if err := s.users.AppendNotification(ctx, owner.ID, message); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// RemoveDog deletes an unadopted dog owned by the caller. The lookup is
// filtered by id and owner together, so a non-owner gets the same forbidden
// outcome as a nonexistent id.
func (s *AdoptionService) RemoveDog(ctx context.Context, callerID int64, dogID string) error {
	if _, err := uuid.Parse(dogID); err != nil {
		return fmt.Errorf("%w: malformed dog id", domain.ErrInvalidInput)
	}

	dog, err := s.dogs.GetByIDAndOwner(ctx, dogID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get dog: %w", err)
	}

	if dog.Adopted() {
		return domain.ErrAlreadyAdopted
	}

	if err := s.dogs.Delete(ctx, dogID); err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}

	// Retract the back-reference so the owner's list stays consistent.
	if err := s.users.RemoveOwnedDog(ctx, callerID, dogID); err != nil {
		return fmt.Errorf("remove owned dog: %w", err)
	}

	return nil
}

// ListOwnedDogs returns the caller's registered dogs in registration order,
// optionally filtered by adoption status (case-insensitive).
func (s *AdoptionService) ListOwnedDogs(ctx context.Context, ownerID int64, status string, page, limit int) ([]domain.Dog, error) {
	filter := domain.DogFilter{OwnerID: &ownerID}
	if status != "" {
		st := domain.AdoptionStatus(strings.ToUpper(status))
		filter.Status = &st
	}
	return s.listDogs(ctx, filter, page, limit)
}

// ListAdoptedDogs returns the dogs the caller has adopted, in adoption order.
func (s *AdoptionService) ListAdoptedDogs(ctx context.Context, adopterID int64, page, limit int) ([]domain.Dog, error) {
	return s.listDogs(ctx, domain.DogFilter{AdoptedBy: &adopterID}, page, limit)
}

// Notifications returns the caller's notification log in append order.
func (s *AdoptionService) Notifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.users.Notifications(ctx, userID)
}

func (s *AdoptionService) listDogs(ctx context.Context, filter domain.DogFilter, page, limit int) ([]domain.Dog, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	dogs, err := s.dogs.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	return dogs, nil
}
