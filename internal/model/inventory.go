package model

// InventoryItem is a stocked consumable (brackets, wires, anesthetics).
type InventoryItem struct {
	Base
	Name         string `db:"name" json:"name"`
	SKU          string `db:"sku" json:"sku"`
	Quantity     int    `db:"quantity" json:"quantity"`
	ReorderLevel int    `db:"reorder_level" json:"reorder_level"`
	Unit         string `db:"unit" json:"unit"`
}

type CreateInventoryItemRequest struct {
	Name         string `json:"name" binding:"required"`
	SKU          string `json:"sku" binding:"required"`
	Quantity     int    `json:"quantity" binding:"min=0"`
	ReorderLevel int    `json:"reorder_level" binding:"min=0"`
	Unit         string `json:"unit" binding:"required"`
}

type UpdateInventoryItemRequest struct {
	Name         *string `json:"name"`
	Quantity     *int    `json:"quantity" binding:"omitempty,min=0"`
	ReorderLevel *int    `json:"reorder_level" binding:"omitempty,min=0"`
	Unit         *string `json:"unit"`
}
