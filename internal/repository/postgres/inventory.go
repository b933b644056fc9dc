package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type inventoryRepository struct {
	BaseRepository
}

func NewInventoryRepository(base BaseRepository) repository.InventoryRepository {
	return &inventoryRepository{base}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, name, sku, quantity, reorder_level, unit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.SKU,
		item.Quantity,
		item.ReorderLevel,
		item.Unit,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `
		SELECT id, name, sku, quantity, reorder_level, unit, created_at, updated_at
		FROM inventory_items
		WHERE id = $1 AND deleted_at IS NULL
	`
	var item model.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, quantity = $2, reorder_level = $3, unit = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`
	item.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Quantity,
		item.ReorderLevel,
		item.Unit,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inventory item not found")
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE inventory_items SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inventory item not found")
	}
	return nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, name, sku, quantity, reorder_level, unit, created_at, updated_at
		FROM inventory_items
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`
	var items []*model.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

func (r *inventoryRepository) ListBelowReorderLevel(ctx context.Context) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, name, sku, quantity, reorder_level, unit, created_at, updated_at
		FROM inventory_items
		WHERE quantity <= reorder_level AND deleted_at IS NULL
		ORDER BY name ASC
	`
	var items []*model.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}
