package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pawadopt/pawadopt/internal/domain"
	"github.com/pawadopt/pawadopt/internal/repository/sqlite"
	"github.com/pawadopt/pawadopt/internal/service"
)

func newTestAdoptionService(t *testing.T) (*service.AdoptionService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewAdoptionService(db.Dogs(), db.Users()), db
}

func registerUser(t *testing.T, db *sqlite.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestAdoptionService_RegisterDog(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")

	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "a good boy")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}

	if dog.ID == "" {
		t.Fatal("expected dog ID to be set")
	}
	if dog.Status != domain.StatusAvailable {
		t.Fatalf("expected status AVAILABLE, got %s", dog.Status)
	}
	if dog.OwnerID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, dog.OwnerID)
	}
	if dog.AdoptedBy != nil {
		t.Fatal("expected AdoptedBy to be nil")
	}

	// Registration appends the owned back-reference.
	ids, err := db.Users().OwnedDogIDs(ctx, owner.ID)
	if err != nil {
		t.Fatalf("OwnedDogIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != dog.ID {
		t.Fatalf("expected ownedDogs to contain %s, got %v", dog.ID, ids)
	}
}

func TestAdoptionService_RegisterDog_MissingName(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	owner := registerUser(t, db, "alice")

	_, err := svc.RegisterDog(context.Background(), owner.ID, "", "no name")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdoptionService_AdoptDog(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	adopter := registerUser(t, db, "bob")

	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}

	adopted, err := svc.AdoptDog(ctx, adopter.ID, dog.ID)
	if err != nil {
		t.Fatalf("AdoptDog: %v", err)
	}
	if adopted.Status != domain.StatusAdopted {
		t.Fatalf("expected status ADOPTED, got %s", adopted.Status)
	}
	if adopted.AdoptedBy == nil || *adopted.AdoptedBy != adopter.ID {
		t.Fatalf("expected AdoptedBy=%d, got %v", adopter.ID, adopted.AdoptedBy)
	}

	// Adoption appends the adopter's back-reference.
	ids, err := db.Users().AdoptedDogIDs(ctx, adopter.ID)
	if err != nil {
		t.Fatalf("AdoptedDogIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != dog.ID {
		t.Fatalf("expected adoptedDogs to contain %s, got %v", dog.ID, ids)
	}

	// The original owner gets one notification naming the dog and the adopter.
	notifications, err := db.Users().Notifications(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	msg := notifications[0].Message
	for _, want := range []string{"alice", "Buddy", "bob"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected notification to mention %q, got %q", want, msg)
		}
	}
}

func TestAdoptionService_AdoptDog_Twice(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	first := registerUser(t, db, "bob")
	second := registerUser(t, db, "carol")

	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}

	if _, err := svc.AdoptDog(ctx, first.ID, dog.ID); err != nil {
		t.Fatalf("first AdoptDog: %v", err)
	}

	_, err = svc.AdoptDog(ctx, second.ID, dog.ID)
	if !errors.Is(err, domain.ErrAlreadyAdopted) {
		t.Fatalf("expected ErrAlreadyAdopted, got %v", err)
	}

	// Even the first adopter cannot adopt again.
	_, err = svc.AdoptDog(ctx, first.ID, dog.ID)
	if !errors.Is(err, domain.ErrAlreadyAdopted) {
		t.Fatalf("expected ErrAlreadyAdopted on re-adoption, got %v", err)
	}
}

func TestAdoptionService_AdoptDog_OwnDog(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}

	_, err = svc.AdoptDog(ctx, owner.ID, dog.ID)
	if !errors.Is(err, domain.ErrOwnDog) {
		t.Fatalf("expected ErrOwnDog, got %v", err)
	}

	// State unchanged.
	found, err := db.Dogs().GetByID(ctx, dog.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Status != domain.StatusAvailable || found.AdoptedBy != nil {
		t.Fatal("expected dog to remain AVAILABLE and unadopted")
	}
}

func TestAdoptionService_AdoptDog_NotFound(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	adopter := registerUser(t, db, "bob")

	_, err := svc.AdoptDog(context.Background(), adopter.ID, "ffffffff-ffff-ffff-ffff-ffffffffffff")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdoptionService_RemoveDog(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}

	if err := svc.RemoveDog(ctx, owner.ID, dog.ID); err != nil {
		t.Fatalf("RemoveDog: %v", err)
	}

	if _, err := db.Dogs().GetByID(ctx, dog.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected dog to be deleted, got %v", err)
	}

	// The owned back-reference is retracted as well.
	ids, err := db.Users().OwnedDogIDs(ctx, owner.ID)
	if err != nil {
		t.Fatalf("OwnedDogIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty ownedDogs after removal, got %v", ids)
	}
}

func TestAdoptionService_RemoveDog_InvalidID(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	owner := registerUser(t, db, "alice")

	err := svc.RemoveDog(context.Background(), owner.ID, "not-a-uuid")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdoptionService_RemoveDog_NotOwner(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	other := registerUser(t, db, "bob")
	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}

	// A non-owner and a nonexistent id get the same forbidden outcome.
	if err := svc.RemoveDog(ctx, other.ID, dog.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.RemoveDog(ctx, other.ID, "ffffffff-ffff-ffff-ffff-ffffffffffff"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown id, got %v", err)
	}

	// The dog is untouched.
	if _, err := db.Dogs().GetByID(ctx, dog.ID); err != nil {
		t.Fatalf("expected dog to still exist, got %v", err)
	}
}

func TestAdoptionService_RemoveDog_Adopted(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	adopter := registerUser(t, db, "bob")
	dog, err := svc.RegisterDog(ctx, owner.ID, "Buddy", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}
	if _, err := svc.AdoptDog(ctx, adopter.ID, dog.ID); err != nil {
		t.Fatalf("AdoptDog: %v", err)
	}

	// Even the owner cannot remove an adopted dog.
	err = svc.RemoveDog(ctx, owner.ID, dog.ID)
	if !errors.Is(err, domain.ErrAlreadyAdopted) {
		t.Fatalf("expected ErrAlreadyAdopted, got %v", err)
	}
}

func TestAdoptionService_ListOwnedDogs_Pagination(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	var names []string
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("dog-%d", i)
		names = append(names, name)
		if _, err := svc.RegisterDog(ctx, owner.ID, name, ""); err != nil {
			t.Fatalf("RegisterDog %s: %v", name, err)
		}
	}

	// For N dogs with limit L, page P holds the (P-1)*L .. P*L-1 slice in
	// registration order.
	tests := []struct {
		page, limit int
		want        []string
	}{
		{1, 2, []string{"dog-0", "dog-1"}},
		{2, 2, []string{"dog-2", "dog-3"}},
		{3, 2, []string{"dog-4"}},
		{4, 2, nil},
		{1, 10, names},
	}

	for _, tc := range tests {
		dogs, err := svc.ListOwnedDogs(ctx, owner.ID, "", tc.page, tc.limit)
		if err != nil {
			t.Fatalf("ListOwnedDogs(page=%d, limit=%d): %v", tc.page, tc.limit, err)
		}
		if len(dogs) != len(tc.want) {
			t.Fatalf("page=%d limit=%d: expected %d dogs, got %d", tc.page, tc.limit, len(tc.want), len(dogs))
		}
		for i, want := range tc.want {
			if dogs[i].Name != want {
				t.Fatalf("page=%d limit=%d: expected %s at index %d, got %s", tc.page, tc.limit, want, i, dogs[i].Name)
			}
		}
	}
}

func TestAdoptionService_ListOwnedDogs_StatusFilter(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	adopter := registerUser(t, db, "bob")

	kept, err := svc.RegisterDog(ctx, owner.ID, "Kept", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}
	gone, err := svc.RegisterDog(ctx, owner.ID, "Gone", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}
	if _, err := svc.AdoptDog(ctx, adopter.ID, gone.ID); err != nil {
		t.Fatalf("AdoptDog: %v", err)
	}

	// The filter is case-insensitive.
	available, err := svc.ListOwnedDogs(ctx, owner.ID, "available", service.DefaultPage, 10)
	if err != nil {
		t.Fatalf("ListOwnedDogs: %v", err)
	}
	if len(available) != 1 || available[0].ID != kept.ID {
		t.Fatalf("expected only the available dog, got %d dogs", len(available))
	}

	adopted, err := svc.ListOwnedDogs(ctx, owner.ID, "ADOPTED", service.DefaultPage, 10)
	if err != nil {
		t.Fatalf("ListOwnedDogs: %v", err)
	}
	if len(adopted) != 1 || adopted[0].ID != gone.ID {
		t.Fatalf("expected only the adopted dog, got %d dogs", len(adopted))
	}
}

func TestAdoptionService_ListAdoptedDogs(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	ctx := context.Background()

	owner := registerUser(t, db, "alice")
	adopter := registerUser(t, db, "bob")

	first, err := svc.RegisterDog(ctx, owner.ID, "First", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}
	second, err := svc.RegisterDog(ctx, owner.ID, "Second", "")
	if err != nil {
		t.Fatalf("RegisterDog: %v", err)
	}
	if _, err := svc.AdoptDog(ctx, adopter.ID, first.ID); err != nil {
		t.Fatalf("AdoptDog: %v", err)
	}
	if _, err := svc.AdoptDog(ctx, adopter.ID, second.ID); err != nil {
		t.Fatalf("AdoptDog: %v", err)
	}

	dogs, err := svc.ListAdoptedDogs(ctx, adopter.ID, service.DefaultPage, 10)
	if err != nil {
		t.Fatalf("ListAdoptedDogs: %v", err)
	}
	if len(dogs) != 2 {
		t.Fatalf("expected 2 adopted dogs, got %d", len(dogs))
	}

	// The owner has adopted nothing.
	none, err := svc.ListAdoptedDogs(ctx, owner.ID, service.DefaultPage, 10)
	if err != nil {
		t.Fatalf("ListAdoptedDogs: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no adopted dogs for owner, got %d", len(none))
	}
}

func TestAdoptionService_ListDogs_LimitCap(t *testing.T) {
	svc, db := newTestAdoptionService(t)
	owner := registerUser(t, db, "alice")

	// An oversized limit is clamped rather than rejected.
	if _, err := svc.ListOwnedDogs(context.Background(), owner.ID, "", 1, service.MaxLimit*10); err != nil {
		t.Fatalf("ListOwnedDogs with oversized limit: %v", err)
	}
}
