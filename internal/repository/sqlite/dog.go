package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pawadopt/pawadopt/internal/domain"
)

// DogRepository implements domain.DogRepository using SQLite.
type DogRepository struct {
	db *sql.DB
}

// NewDogRepository creates a new SQLite-backed DogRepository.
func NewDogRepository(db *DB) *DogRepository {
	return &DogRepository{db: db.SqlDB}
}

const dogColumns = "id, name, description, adoption_status, owner_id, adopted_by, created_at, updated_at"

func (r *DogRepository) Create(ctx context.Context, dog *domain.Dog) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dogs (id, name, description, adoption_status, owner_id, adopted_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
		dog.ID, dog.Name, dog.Description, dog.Status, dog.OwnerID, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert dog: %w", err)
	}

	dog.CreatedAt = now
	dog.UpdatedAt = now
	return nil
}

func (r *DogRepository) GetByID(ctx context.Context, id string) (*domain.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+dogColumns+" FROM dogs WHERE id = ?", id)
	return scanDog(row)
}

func (r *DogRepository) GetByIDAndOwner(ctx context.Context, id string, ownerID int64) (*domain.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+dogColumns+" FROM dogs WHERE id = ? AND owner_id = ?", id, ownerID)
	return scanDog(row)
}

func (r *DogRepository) List(ctx context.Context, filter domain.DogFilter, limit, offset int) ([]domain.Dog, error) {
	query := "SELECT " + dogColumns + " FROM dogs WHERE 1=1"
	var args []any

	if filter.OwnerID != nil {
		query += " AND owner_id = ?"
		args = append(args, *filter.OwnerID)
	}
	if filter.AdoptedBy != nil {
		query += " AND adopted_by = ?"
		args = append(args, *filter.AdoptedBy)
	}
	if filter.Status != nil {
		query += " AND adoption_status = ?"
		args = append(args, *filter.Status)
	}

	// rowid preserves insertion order even when timestamps collide.
	query += " ORDER BY rowid LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dogs: %w", err)
	}
	defer rows.Close()

	var dogs []domain.Dog
	for rows.Next() {
		dog, err := scanDogRow(rows)
		if err != nil {
			return nil, err
		}
		dogs = append(dogs, *dog)
	}
	return dogs, rows.Err()
}

// Adopt records the adopter and flips the status in one conditional update.
// The WHERE clause on adopted_by makes concurrent adoptions of the same dog
// mutually exclusive: the loser sees zero affected rows.
func (r *DogRepository) Adopt(ctx context.Context, id string, adopterID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dogs SET adopted_by = ?, adoption_status = ?, updated_at = ?
		 WHERE id = ? AND adopted_by IS NULL`,
		adopterID, domain.StatusAdopted, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update dog adoption: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyAdopted
	}
	return nil
}

func (r *DogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM dogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row *sql.Row) (*domain.Dog, error) {
	dog, err := scanDogRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dog, nil
}

func scanDogRow(s rowScanner) (*domain.Dog, error) {
	dog := &domain.Dog{}
	var adoptedBy sql.NullInt64
	err := s.Scan(&dog.ID, &dog.Name, &dog.Description, &dog.Status,
		&dog.OwnerID, &adoptedBy, &dog.CreatedAt, &dog.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan dog: %w", err)
	}
	if adoptedBy.Valid {
		dog.AdoptedBy = &adoptedBy.Int64
	}
	return dog, nil
}
