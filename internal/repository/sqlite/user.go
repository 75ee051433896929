package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawadopt/pawadopt/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordHash, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) AppendOwnedDog(ctx context.Context, userID int64, dogID string) error {
	return r.appendRef(ctx, "owned_dogs", userID, dogID)
}

func (r *UserRepository) RemoveOwnedDog(ctx context.Context, userID int64, dogID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM owned_dogs WHERE user_id = ? AND dog_id = ?", userID, dogID)
	if err != nil {
		return fmt.Errorf("remove owned dog: %w", err)
	}
	return nil
}

func (r *UserRepository) OwnedDogIDs(ctx context.Context, userID int64) ([]string, error) {
	return r.refIDs(ctx, "owned_dogs", userID)
}

func (r *UserRepository) AppendAdoptedDog(ctx context.Context, userID int64, dogID string) error {
	return r.appendRef(ctx, "adopted_dogs", userID, dogID)
}

func (r *UserRepository) AdoptedDogIDs(ctx context.Context, userID int64) ([]string, error) {
	return r.refIDs(ctx, "adopted_dogs", userID)
}

func (r *UserRepository) AppendNotification(ctx context.Context, userID int64, message string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message, created_at) VALUES (?, ?, ?)",
		userID, message, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *UserRepository) Notifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, message, created_at
		 FROM notifications WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *UserRepository) appendRef(ctx context.Context, table string, userID int64, dogID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO "+table+" (user_id, dog_id, created_at) VALUES (?, ?, ?)",
		userID, dogID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (r *UserRepository) refIDs(ctx context.Context, table string, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT dog_id FROM "+table+" WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
