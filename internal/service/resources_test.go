package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrisDawg/family-sync/models"
)

// recordingEngine captures the raw surface calls the typed helpers make.
type recordingEngine struct {
	fetchEndpoint string
	fetchParams   map[string]string
	fetchPayload  json.RawMessage
	fetchErr      error

	mutateMethod   string
	mutateEndpoint string
	mutateBody     json.RawMessage
}

func (e *recordingEngine) Fetch(_ context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	e.fetchEndpoint = endpoint
	e.fetchParams = params
	return e.fetchPayload, e.fetchErr
}

func (e *recordingEngine) Mutate(_ context.Context, method, endpoint string, body json.RawMessage) (models.MutationResult, error) {
	e.mutateMethod = method
	e.mutateEndpoint = endpoint
	e.mutateBody = body
	return models.MutationResult{Outcome: models.MutationApplied, RequestID: "r1"}, nil
}

func (e *recordingEngine) Drain(_ context.Context) (DrainStats, error) { return DrainStats{}, nil }

func (e *recordingEngine) ConnectivityStatus() models.ConnectivityStatus {
	return models.ConnectivityStatus{}
}

func (e *recordingEngine) ListFailedMutations(_ context.Context) ([]models.PendingRequest, error) {
	return nil, nil
}

func (e *recordingEngine) LastSync() *time.Time { return nil }

func TestResources_InventoryDecodesList(t *testing.T) {
	engine := &recordingEngine{
		fetchPayload: json.RawMessage(`[{"id":1,"name":"milk","qty":2,"unit":"l"}]`),
	}
	r := NewResources(engine)

	items, err := r.Inventory(context.Background(), "dairy")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "milk", items[0].Name)
	assert.Equal(t, 2.0, items[0].Qty)

	assert.Equal(t, "inventory", engine.fetchEndpoint)
	assert.Equal(t, map[string]string{"category": "dairy"}, engine.fetchParams)
}

func TestResources_InventoryNoCategoryOmitsParams(t *testing.T) {
	engine := &recordingEngine{fetchPayload: json.RawMessage(`[]`)}
	r := NewResources(engine)

	_, err := r.Inventory(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, engine.fetchParams)
}

func TestResources_FetchErrorPassesThrough(t *testing.T) {
	engine := &recordingEngine{fetchErr: ErrNoCachedData}
	r := NewResources(engine)

	_, err := r.ShoppingList(context.Background())
	assert.ErrorIs(t, err, ErrNoCachedData)
}

func TestResources_AddBillEncodesBody(t *testing.T) {
	engine := &recordingEngine{}
	r := NewResources(engine)

	res, err := r.AddBill(context.Background(), models.Bill{
		Name: "electricity", Amount: 120.50, DueDate: "2026-09-01", Recurring: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MutationApplied, res.Outcome)
	assert.Equal(t, "POST", engine.mutateMethod)
	assert.Equal(t, "bills", engine.mutateEndpoint)
	assert.JSONEq(t,
		`{"name":"electricity","amount":120.5,"due_date":"2026-09-01","recurring":true}`,
		string(engine.mutateBody))
}

func TestResources_MarkBillPaid(t *testing.T) {
	engine := &recordingEngine{}
	r := NewResources(engine)

	_, err := r.MarkBillPaid(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, "PUT", engine.mutateMethod)
	assert.Equal(t, "bills/17", engine.mutateEndpoint)
	assert.JSONEq(t, `{"paid":true}`, string(engine.mutateBody))
}

func TestResources_CheckShoppingItem(t *testing.T) {
	engine := &recordingEngine{}
	r := NewResources(engine)

	_, err := r.CheckShoppingItem(context.Background(), 3, true)
	require.NoError(t, err)
	assert.Equal(t, "shopping-list/3", engine.mutateEndpoint)
	assert.JSONEq(t, `{"checked":true}`, string(engine.mutateBody))
}

func TestResources_DeleteInventoryItemHasNoBody(t *testing.T) {
	engine := &recordingEngine{}
	r := NewResources(engine)

	_, err := r.DeleteInventoryItem(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "DELETE", engine.mutateMethod)
	assert.Equal(t, "inventory/8", engine.mutateEndpoint)
	assert.Nil(t, engine.mutateBody)
}

func TestResources_ChoresFilters(t *testing.T) {
	engine := &recordingEngine{fetchPayload: json.RawMessage(`[]`)}
	r := NewResources(engine)

	_, err := r.Chores(context.Background(), 5, "open")
	require.NoError(t, err)
	assert.Equal(t, "chores", engine.fetchEndpoint)
	assert.Equal(t, map[string]string{"assignee_id": "5", "status": "open"}, engine.fetchParams)

	_, err = r.Chores(context.Background(), 0, "")
	require.NoError(t, err)
	assert.Nil(t, engine.fetchParams)
}

func TestResources_CompleteChore(t *testing.T) {
	engine := &recordingEngine{}
	r := NewResources(engine)

	_, err := r.CompleteChore(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "chores/12", engine.mutateEndpoint)
	assert.JSONEq(t, `{"status":"completed"}`, string(engine.mutateBody))
}
