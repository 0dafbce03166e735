package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// UserStore persists user accounts.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a UserStore on the given database handle.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, nuid, name, phone, email, password_hash, created_at, updated_at`

// Create persists a new user, assigning id and timestamps.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.NUID, user.Name, user.Phone, user.Email,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID returns a user by id, or (nil, nil) if absent.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getWhere(ctx, "id = $1", id)
}

// GetByEmail returns a user by email, or (nil, nil) if absent.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getWhere(ctx, "email = $1", email)
}

func (s *UserStore) getWhere(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.NUID, &user.Name, &user.Phone, &user.Email,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListIDsExcept returns the ids of every user except the given one. This is
// the recipient query for new-item notification fan-out.
func (s *UserStore) ListIDsExcept(ctx context.Context, excludeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM users WHERE id <> $1`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}
	return ids, nil
}

// UpdateProfile applies only the fields present in patch and stamps
// updated_at. Returns the matched count.
func (s *UserStore) UpdateProfile(ctx context.Context, id string, patch models.UserPatch) (int64, error) {
	set := ""
	args := []any{}
	arg := func(column string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if patch.NUID != "" {
		arg("nuid", patch.NUID)
	}
	if patch.Name != "" {
		arg("name", patch.Name)
	}
	if patch.Phone != "" {
		arg("phone", patch.Phone)
	}
	if patch.Email != "" {
		arg("email", patch.Email)
	}
	arg("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", set, len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	return matched, nil
}

// UpdatePassword replaces the stored password hash. Returns the matched count.
func (s *UserStore) UpdatePassword(ctx context.Context, id, passwordHash string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update password: %w", err)
	}
	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	return matched, nil
}
