package todo

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository over a *sql.DB using the pgx
// stdlib driver.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given database
// handle. The handle is shared process-wide; every operation runs as a single
// implicit transaction.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListAll returns all todos ordered created_at descending. Rows inserted
// within the same timestamp tick fall back to id descending so the most
// recent insert still comes first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Todo, error) {
	query := `
		SELECT id, title, location, completed, created_at FROM todos
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	result := []Todo{}
	for rows.Next() {
		var item Todo
		if err := rows.Scan(&item.ID, &item.Title, &item.Location, &item.Completed, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a row and returns it with the storage-assigned id and
// created_at. An empty-string location is normalized to NULL here so the
// table never holds "".
func (r *PostgresRepository) Create(ctx context.Context, title string, location *string) (*Todo, error) {
	if location != nil && *location == "" {
		location = nil
	}
	query := `
		INSERT INTO todos (title, location)
		VALUES ($1, $2)
		RETURNING id, title, location, completed, created_at
	`
	item := &Todo{}
	err := r.db.QueryRowContext(ctx, query, title, location).
		Scan(&item.ID, &item.Title, &item.Location, &item.Completed, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	return item, nil
}

// DeleteOne removes the row with the given id. Zero rows affected means the
// id never existed (or was already deleted) and is reported as ErrNotFound.
func (r *PostgresRepository) DeleteOne(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll truncates the collection. Idempotent.
func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}
