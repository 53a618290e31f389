package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itemtrack/internal/common"
	"itemtrack/internal/domain/model"
)

// ItemRepository scopes every lookup and mutation to the owning user in the
// SQL predicate itself, so items owned by someone else are indistinguishable
// from nonexistent ones.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.Item, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id, ownerID string) error
	DeleteByOwner(ctx context.Context, tx *sql.Tx, ownerID string) error
}

type pgItemRepository struct {
	db *sql.DB
}

func NewPgItemRepository(db *sql.DB) ItemRepository {
	return &pgItemRepository{db: db}
}

func (r *pgItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `INSERT INTO items (id, title, description, user_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, item.ID, item.Title, item.Description, item.UserID).
		Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgItemRepository.Create: %w", err)
	}
	return nil
}

func (r *pgItemRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	query := `SELECT id, title, description, user_id, created_at, updated_at
	          FROM items WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgItemRepository.FindByOwner: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.UserID, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgItemRepository.FindByOwner scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgItemRepository.FindByOwner rows: %w", err)
	}
	return items, nil
}

func (r *pgItemRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Item, error) {
	query := `SELECT id, title, description, user_id, created_at, updated_at
	          FROM items WHERE id = $1 AND user_id = $2`
	item := &model.Item{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&item.ID, &item.Title, &item.Description, &item.UserID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgItemRepository.FindByIDAndOwner: %w", err)
	}
	return item, nil
}

func (r *pgItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `UPDATE items
	          SET title = $3, description = $4, updated_at = now()
	          WHERE id = $1 AND user_id = $2
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, item.ID, item.UserID, item.Title, item.Description).
		Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgItemRepository.Update: %w", err)
	}
	return nil
}

func (r *pgItemRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("pgItemRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgItemRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteByOwner removes every item owned by ownerID inside the caller's
// transaction. Used by user deletion to make the cascade explicit.
func (r *pgItemRepository) DeleteByOwner(ctx context.Context, tx *sql.Tx, ownerID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE user_id = $1`, ownerID); err != nil {
		return fmt.Errorf("pgItemRepository.DeleteByOwner: %w", err)
	}
	return nil
}
