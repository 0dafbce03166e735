package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// ItemStore persists items in Postgres.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore creates an ItemStore on the given database handle.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, owner_id, name, location, description, category,
	date_found, image, status, created_at, updated_at`

// Create assigns an id and timestamps, defaults the status to searching and
// persists the item. The stored document is returned via the same pointer.
func (s *ItemStore) Create(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = models.StatusSearching
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.OwnerID, item.Name, item.Location, item.Description,
		item.Category, item.DateFound, item.Image, item.Status,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetByID returns the item with the given id, or (nil, nil) if it does not
// exist. Absence is a normal outcome here, not an error.
func (s *ItemStore) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Update applies only the fields present in patch and stamps updated_at.
// When guardNotClaimed is set the update carries a status <> 'claimed'
// precondition, so a concurrent claim makes this one match zero rows.
// Returns the number of matched rows; zero means the item is gone (or, with
// the guard, already claimed).
func (s *ItemStore) Update(ctx context.Context, id string, patch models.ItemPatch, guardNotClaimed bool) (int64, error) {
	set := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Name != "" {
		set = append(set, "name = "+arg(patch.Name))
	}
	if patch.Location != "" {
		set = append(set, "location = "+arg(patch.Location))
	}
	if patch.Description != "" {
		set = append(set, "description = "+arg(patch.Description))
	}
	if patch.Category != "" {
		set = append(set, "category = "+arg(patch.Category))
	}
	if patch.DateFound != "" {
		set = append(set, "date_found = "+arg(patch.DateFound))
	}
	if patch.ImageSet {
		set = append(set, "image = "+arg(patch.Image))
	}
	if patch.Status != "" {
		set = append(set, "status = "+arg(patch.Status))
	}
	set = append(set, "updated_at = "+arg(time.Now().UTC()))

	query := "UPDATE items SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = " + arg(id)
	if guardNotClaimed {
		query += " AND status <> " + arg(models.StatusClaimed)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update item: %w", err)
	}
	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	return matched, nil
}

// Delete removes the item and returns the number of deleted rows.
func (s *ItemStore) Delete(ctx context.Context, id string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}
	return deleted, nil
}

// ListByOwner returns all items reported by the given user, newest first.
func (s *ItemStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// List returns a page of items matching the filter, newest first, together
// with the total match count for pagination.
func (s *ItemStore) List(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error) {
	where := ""
	args := []any{}
	and := func(clause string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.OwnerID != "" {
		and("owner_id = $%d", filter.OwnerID)
	}
	if filter.Status != "" {
		and("status = $%d", filter.Status)
	}
	if filter.Location != "" {
		and("location = $%d", filter.Location)
	}
	if filter.Category != "" {
		and("category = $%d", filter.Category)
	}
	if filter.DateFound != "" {
		and("date_found = $%d", filter.DateFound)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d OR category ILIKE $%d)", n, n, n, n)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM items"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(
		"SELECT "+itemColumns+" FROM items%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var image sql.NullString
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Name, &item.Location, &item.Description,
		&item.Category, &item.DateFound, &image, &item.Status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if image.Valid {
		item.Image = &image.String
	}
	return item, nil
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}
