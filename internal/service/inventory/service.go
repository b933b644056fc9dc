package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/internal/service/audit"
)

const lowStockCacheKey = "low_stock"

type Service struct {
	repo    repository.InventoryRepository
	auditor *audit.Service
	cache   *gocache.Cache
}

func NewService(repo repository.InventoryRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) CreateItem(ctx context.Context, actorID uuid.UUID, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	now := time.Now()
	item := &model.InventoryItem{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		SKU:          req.SKU,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		Unit:         req.Unit,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.cache.Delete(lowStockCacheKey)
	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityInventory, item.ID, &audit.LogOptions{
		Changes: item,
	})
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, actorID, id uuid.UUID, req *model.UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.cache.Delete(lowStockCacheKey)
	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityInventory, id, &audit.LogOptions{
		Changes: req,
	})
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.cache.Delete(lowStockCacheKey)
	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityInventory, id, nil)
	return nil
}

func (s *Service) ListItems(ctx context.Context) ([]*model.InventoryItem, error) {
	return s.repo.List(ctx)
}

// LowStock serves the reorder dashboard, cached since the reception desk
// polls it.
func (s *Service) LowStock(ctx context.Context) ([]*model.InventoryItem, error) {
	if cached, ok := s.cache.Get(lowStockCacheKey); ok {
		return cached.([]*model.InventoryItem), nil
	}

	items, err := s.repo.ListBelowReorderLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}

	s.cache.Set(lowStockCacheKey, items, gocache.DefaultExpiration)
	return items, nil
}
