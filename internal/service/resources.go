package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/KrisDawg/family-sync/models"
)

// Resources offers typed helpers over the sync engine for the resource
// endpoints the mobile shell uses most. Every call goes through
// Fetch/Mutate, so the offline behavior is identical to the raw surface.
type Resources struct {
	engine SyncEngine
}

// NewResources wraps engine with the typed resource surface.
func NewResources(engine SyncEngine) *Resources {
	return &Resources{engine: engine}
}

// Inventory lists inventory items, optionally filtered by category.
func (r *Resources) Inventory(ctx context.Context, category string) ([]models.InventoryItem, error) {
	var params map[string]string
	if category != "" {
		params = map[string]string{"category": category}
	}
	return fetchList[models.InventoryItem](ctx, r.engine, "inventory", params)
}

// AddInventoryItem creates an inventory item.
func (r *Resources) AddInventoryItem(ctx context.Context, item models.InventoryItem) (models.MutationResult, error) {
	return mutateJSON(ctx, r.engine, "POST", "inventory", item)
}

// UpdateInventoryItem applies a partial update to an inventory item.
func (r *Resources) UpdateInventoryItem(ctx context.Context, id int64, fields map[string]any) (models.MutationResult, error) {
	return mutateJSON(ctx, r.engine, "PUT", "inventory/"+strconv.FormatInt(id, 10), fields)
}

// DeleteInventoryItem deletes an inventory item.
func (r *Resources) DeleteInventoryItem(ctx context.Context, id int64) (models.MutationResult, error) {
	return r.engine.Mutate(ctx, "DELETE", "inventory/"+strconv.FormatInt(id, 10), nil)
}

// ShoppingList lists shopping list rows.
func (r *Resources) ShoppingList(ctx context.Context) ([]models.ShoppingItem, error) {
	return fetchList[models.ShoppingItem](ctx, r.engine, "shopping-list", nil)
}

// AddShoppingItem creates a shopping list row.
func (r *Resources) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (models.MutationResult, error) {
	return mutateJSON(ctx, r.engine, "POST", "shopping-list", item)
}

// CheckShoppingItem toggles a row's checked flag.
func (r *Resources) CheckShoppingItem(ctx context.Context, id int64, checked bool) (models.MutationResult, error) {
	body := map[string]any{"checked": checked}
	return mutateJSON(ctx, r.engine, "PUT", "shopping-list/"+strconv.FormatInt(id, 10), body)
}

// DeleteShoppingItem deletes a shopping list row.
func (r *Resources) DeleteShoppingItem(ctx context.Context, id int64) (models.MutationResult, error) {
	return r.engine.Mutate(ctx, "DELETE", "shopping-list/"+strconv.FormatInt(id, 10), nil)
}

// Bills lists bills, optionally filtered by status.
func (r *Resources) Bills(ctx context.Context, status string) ([]models.Bill, error) {
	var params map[string]string
	if status != "" {
		params = map[string]string{"status": status}
	}
	return fetchList[models.Bill](ctx, r.engine, "bills", params)
}

// AddBill creates a bill.
func (r *Resources) AddBill(ctx context.Context, bill models.Bill) (models.MutationResult, error) {
	return mutateJSON(ctx, r.engine, "POST", "bills", bill)
}

// MarkBillPaid marks a bill as paid.
func (r *Resources) MarkBillPaid(ctx context.Context, id int64) (models.MutationResult, error) {
	body := map[string]any{"paid": true}
	return mutateJSON(ctx, r.engine, "PUT", "bills/"+strconv.FormatInt(id, 10), body)
}

// Chores lists chores, optionally filtered by assignee and status.
func (r *Resources) Chores(ctx context.Context, assigneeID int64, status string) ([]models.Chore, error) {
	params := map[string]string{}
	if assigneeID > 0 {
		params["assignee_id"] = strconv.FormatInt(assigneeID, 10)
	}
	if status != "" {
		params["status"] = status
	}
	if len(params) == 0 {
		params = nil
	}
	return fetchList[models.Chore](ctx, r.engine, "chores", params)
}

// AddChore creates a chore.
func (r *Resources) AddChore(ctx context.Context, chore models.Chore) (models.MutationResult, error) {
	return mutateJSON(ctx, r.engine, "POST", "chores", chore)
}

// CompleteChore marks a chore completed.
func (r *Resources) CompleteChore(ctx context.Context, id int64) (models.MutationResult, error) {
	body := map[string]any{"status": "completed"}
	return mutateJSON(ctx, r.engine, "PUT", "chores/"+strconv.FormatInt(id, 10), body)
}

func fetchList[T any](ctx context.Context, engine SyncEngine, endpoint string, params map[string]string) ([]T, error) {
	payload, err := engine.Fetch(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var out []T
	if len(payload) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return out, nil
}

func mutateJSON(ctx context.Context, engine SyncEngine, method, endpoint string, body any) (models.MutationResult, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("encode %s body: %w", endpoint, err)
	}
	return engine.Mutate(ctx, method, endpoint, raw)
}
