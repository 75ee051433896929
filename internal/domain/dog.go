package domain

import (
	"context"
	"time"
)

type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "AVAILABLE"
	StatusAdopted   AdoptionStatus = "ADOPTED"
)

// Dog is a listing on the adoption platform. AdoptedBy is set exactly once:
// a dog is never re-adopted or un-adopted, and an adopted dog cannot be
// removed. Owner is immutable after creation.
type Dog struct {
	ID          string
	Name        string
	Description string
	Status      AdoptionStatus
	OwnerID     int64
	AdoptedBy   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Adopted reports whether the dog has an adopter recorded.
func (d *Dog) Adopted() bool {
	return d.AdoptedBy != nil
}

// DogFilter narrows List queries. Nil fields are ignored.
type DogFilter struct {
	OwnerID   *int64
	AdoptedBy *int64
	Status    *AdoptionStatus
}

// DogRepository defines persistence operations for dogs.
//
// Adopt must be a single conditional update: it records the adopter and
// flips the status only if no adopter is set yet, reporting ErrAlreadyAdopted
// otherwise. Two concurrent adoptions of the same dog therefore cannot both
// succeed.
type DogRepository interface {
	Create(ctx context.Context, dog *Dog) error
	GetByID(ctx context.Context, id string) (*Dog, error)
	// GetByIDAndOwner looks up a dog by id and owner in one filtered query,
	// so a non-owner gets the same miss as a nonexistent id.
	GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*Dog, error)
	// List returns matching dogs in insertion order, skipping offset rows
	// and returning at most limit.
	List(ctx context.Context, filter DogFilter, limit, offset int) ([]Dog, error)
	Adopt(ctx context.Context, id string, adopterID int64) error
	Delete(ctx context.Context, id string) error
}
