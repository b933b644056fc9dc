package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/audit"
)

type fakeInventoryRepo struct {
	items         map[uuid.UUID]*model.InventoryItem
	lowStockCalls int
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (f *fakeInventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) Get(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, assert.AnError
	}
	return item, nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, item *model.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeInventoryRepo) List(_ context.Context) ([]*model.InventoryItem, error) {
	var out []*model.InventoryItem
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeInventoryRepo) ListBelowReorderLevel(_ context.Context) ([]*model.InventoryItem, error) {
	f.lowStockCalls++
	var out []*model.InventoryItem
	for _, item := range f.items {
		if item.Quantity <= item.ReorderLevel {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, log *model.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ map[string]interface{}) ([]*model.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newTestService() (*Service, *fakeInventoryRepo) {
	repo := newFakeInventoryRepo()
	return NewService(repo, audit.NewService(&fakeAuditRepo{}, nil)), repo
}

func TestLowStockCaching(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	actorID := uuid.New()

	item, err := svc.CreateItem(ctx, actorID, &model.CreateInventoryItemRequest{
		Name:         "archwire 014",
		SKU:          "AW-014",
		Quantity:     2,
		ReorderLevel: 5,
		Unit:         "pack",
	})
	require.NoError(t, err)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, item.ID, low[0].ID)
	assert.Equal(t, 1, repo.lowStockCalls)

	// Second read is served from cache.
	_, err = svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lowStockCalls)

	// A restock invalidates the cached list.
	qty := 50
	_, err = svc.UpdateItem(ctx, actorID, item.ID, &model.UpdateInventoryItemRequest{Quantity: &qty})
	require.NoError(t, err)

	low, err = svc.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)
	assert.Equal(t, 2, repo.lowStockCalls)
}

func TestUpdateMissingItem(t *testing.T) {
	svc, _ := newTestService()

	qty := 1
	_, err := svc.UpdateItem(context.Background(), uuid.New(), uuid.New(), &model.UpdateInventoryItemRequest{Quantity: &qty})
	assert.Error(t, err)
}
