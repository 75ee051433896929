package domain

import (
	"context"
	"time"
)

// User represents a registered account on the adoption platform.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Notification is an append-only in-app message on a user's record, e.g.
// the thank-you note sent to a dog's original owner after adoption.
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	CreatedAt time.Time
}

// UserRepository defines persistence operations for users, their
// owned/adopted back-reference lists, and the notification log. The
// back-references are query conveniences; the dogs table stays
// authoritative for ownership, and the adoption service keeps the two
// consistent.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	AppendOwnedDog(ctx context.Context, userID int64, dogID string) error
	RemoveOwnedDog(ctx context.Context, userID int64, dogID string) error
	OwnedDogIDs(ctx context.Context, userID int64) ([]string, error)

	AppendAdoptedDog(ctx context.Context, userID int64, dogID string) error
	AdoptedDogIDs(ctx context.Context, userID int64) ([]string, error)

	AppendNotification(ctx context.Context, userID int64, message string) error
	Notifications(ctx context.Context, userID int64) ([]Notification, error)
}
