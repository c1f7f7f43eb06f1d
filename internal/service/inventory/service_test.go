package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

type fakeStore struct {
	items      map[string]models.InventoryItem
	activity   []models.InventoryActivity
	stats      *models.InventoryStats
	statsSaves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]models.InventoryItem{}}
}

func (f *fakeStore) ListItems(context.Context) ([]models.InventoryItem, error) {
	items := make([]models.InventoryItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeStore) GetItem(_ context.Context, id string) (*models.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	found := item
	return &found, nil
}

func (f *fakeStore) InsertItem(_ context.Context, item models.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) ApplyItemPatch(_ context.Context, id string, set map[string]any, unset []string) (*models.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}

	for field, raw := range set {
		switch field {
		case "name":
			item.Name = raw.(string)
		case "category":
			item.Category = raw.(string)
		case "unit":
			item.Unit = raw.(string)
		case "supplier":
			item.Supplier = raw.(string)
		case "currentStock":
			item.CurrentStock = raw.(float64)
		case "minStock":
			item.MinStock = raw.(float64)
		case "status":
			item.Status = raw.(models.StockStatus)
		case "price":
			value := raw.(float64)
			item.Price = &value
		case "location":
			value := raw.(string)
			item.Location = &value
		case "description":
			value := raw.(string)
			item.Description = &value
		case "expiryDate":
			value := raw.(time.Time)
			item.ExpiryDate = &value
		case "lastRestocked":
			item.LastRestocked = raw.(time.Time)
		}
	}
	for _, field := range unset {
		switch field {
		case "price":
			item.Price = nil
		case "location":
			item.Location = nil
		case "description":
			item.Description = nil
		case "expiryDate":
			item.ExpiryDate = nil
		}
	}

	f.items[id] = item
	updated := item
	return &updated, nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id string) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeStore) SaveStats(_ context.Context, stats models.InventoryStats) error {
	f.stats = &stats
	f.statsSaves++
	return nil
}

func (f *fakeStore) AppendActivity(_ context.Context, activity models.InventoryActivity) error {
	f.activity = append(f.activity, activity)
	return nil
}

func (f *fakeStore) ListActivity(context.Context, int64) ([]models.InventoryActivity, error) {
	return f.activity, nil
}

func (f *fakeStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func adminSession() *models.Session {
	return &models.Session{UID: "admin-1", Roles: []models.Role{models.RoleAdmin}}
}

func staffSession() *models.Session {
	return &models.Session{UID: "staff-1", Roles: []models.Role{models.RoleStaff}}
}

func float(v float64) *float64 { return &v }

func feedInput() models.CreateInventoryInput {
	return models.CreateInventoryInput{
		Name:         "Feed",
		Category:     "Feed",
		CurrentStock: float(12),
		MinStock:     float(20),
		Unit:         "kg",
		Supplier:     "AgriFeeds",
	}
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, nil)
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 12, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateDerivesStatusAndDisplayID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	item, err := svc.Create(context.Background(), adminSession(), feedInput())
	require.NoError(t, err)

	assert.Equal(t, models.StockLow, item.Status)
	assert.Regexp(t, `^#[0-9A-F]{4}-0412$`, item.DisplayID)
	assert.Equal(t, time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC), item.CreatedAt)
	assert.Equal(t, item.CreatedAt, item.LastRestocked)

	fetched, err := svc.GetByID(context.Background(), staffSession(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CalculateStockStatus(fetched.CurrentStock, fetched.MinStock), fetched.Status)

	require.NotNil(t, store.stats)
	assert.Equal(t, 1, store.stats.TotalItems)
	assert.Equal(t, 1, store.stats.LowStockAlerts)
}

func TestCreateValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	cases := []struct {
		name   string
		mutate func(*models.CreateInventoryInput)
	}{
		{"missing name", func(in *models.CreateInventoryInput) { in.Name = "  " }},
		{"missing category", func(in *models.CreateInventoryInput) { in.Category = "" }},
		{"missing unit", func(in *models.CreateInventoryInput) { in.Unit = "" }},
		{"missing supplier", func(in *models.CreateInventoryInput) { in.Supplier = "" }},
		{"missing currentStock", func(in *models.CreateInventoryInput) { in.CurrentStock = nil }},
		{"missing minStock", func(in *models.CreateInventoryInput) { in.MinStock = nil }},
		{"negative stock", func(in *models.CreateInventoryInput) { in.CurrentStock = float(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := feedInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), adminSession(), input)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidRequest, apperrors.CodeOf(err))
		})
	}

	assert.Empty(t, store.items)
}

func TestConsumeThenRestockScenario(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, adminSession(), feedInput())
	require.NoError(t, err)
	assert.Equal(t, models.StockLow, item.Status)

	consumed, err := svc.Consume(ctx, staffSession(), item.ID, 5, "Used in Operations")
	require.NoError(t, err)
	assert.Equal(t, 7.0, consumed.CurrentStock)
	assert.Equal(t, models.StockCritical, consumed.Status)

	restocked, err := svc.Restock(ctx, staffSession(), item.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 57.0, restocked.CurrentStock)
	assert.Equal(t, models.StockAdequate, restocked.Status)

	require.Len(t, store.activity, 2)
	assert.Equal(t, -5.0, store.activity[0].Amount)
	assert.Equal(t, "Used in Operations", store.activity[0].Reason)
	assert.Equal(t, 12.0, store.activity[0].StockBefore)
	assert.Equal(t, 7.0, store.activity[0].StockAfter)
	assert.Equal(t, 50.0, store.activity[1].Amount)
	assert.Equal(t, "staff-1", store.activity[1].Actor)
}

func TestRestockRejectsBadAmounts(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, adminSession(), feedInput())
	require.NoError(t, err)

	savesBefore := store.statsSaves

	for _, amount := range []float64{0, -3} {
		_, err := svc.Restock(ctx, staffSession(), item.ID, amount)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidRestockAmount, apperrors.CodeOf(err))
	}

	// No mutation happened: item and stats are untouched.
	unchanged, err := svc.GetByID(ctx, adminSession(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, unchanged.CurrentStock)
	assert.Equal(t, savesBefore, store.statsSaves)
	assert.Empty(t, store.activity)
}

func TestConsumeRequiresReason(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, adminSession(), feedInput())
	require.NoError(t, err)

	_, err = svc.Consume(ctx, staffSession(), item.ID, 2, "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeReasonRequired, apperrors.CodeOf(err))
}

func TestConsumeBelowZeroReportsCritical(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, adminSession(), feedInput())
	require.NoError(t, err)

	updated, err := svc.Consume(ctx, staffSession(), item.ID, 25, "spillage")
	require.NoError(t, err)
	assert.Equal(t, -13.0, updated.CurrentStock)
	assert.Equal(t, models.StockCritical, updated.Status)
}

func TestUpdateTriState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	input := feedInput()
	input.Price = float(120)
	item, err := svc.Create(ctx, adminSession(), input)
	require.NoError(t, err)

	// Null removes the optional field entirely; absent fields stay untouched.
	updated, err := svc.Update(ctx, adminSession(), item.ID, map[string]any{"price": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)
	assert.Equal(t, "Feed", updated.Name)
	assert.Equal(t, 12.0, updated.CurrentStock)

	// Provided fields are merged and status recomputed from the new pair.
	updated, err = svc.Update(ctx, adminSession(), item.ID, map[string]any{
		"currentStock": 30.0,
		"location":     "Barn A",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StockAdequate, updated.Status)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Barn A", *updated.Location)
}

func TestUpdateRejectsBadPatches(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, adminSession(), feedInput())
	require.NoError(t, err)

	cases := []struct {
		name  string
		patch map[string]any
	}{
		{"null on required field", map[string]any{"name": nil}},
		{"null on stock", map[string]any{"currentStock": nil}},
		{"wrong type", map[string]any{"minStock": "twenty"}},
		{"unknown field", map[string]any{"color": "red"}},
		{"derived field", map[string]any{"status": "adequate"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, adminSession(), item.ID, tc.patch)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestUpdateMissingItem(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Update(context.Background(), adminSession(), "ghost", map[string]any{"name": "x"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestStatsConsistentAfterMutations(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()
	admin := adminSession()

	first, err := svc.Create(ctx, admin, feedInput())
	require.NoError(t, err)

	grit := feedInput()
	grit.Name = "Grit"
	grit.CurrentStock = float(100)
	grit.MinStock = float(10)
	grit.Price = float(2.5)
	second, err := svc.Create(ctx, admin, grit)
	require.NoError(t, err)

	_, err = svc.Consume(ctx, admin, second.ID, 95, "daily ration")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, admin, first.ID))
	_, err = svc.Restock(ctx, admin, second.ID, 20)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, admin)
	require.NoError(t, err)

	items, err := svc.List(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, len(items), stats.TotalItems)
	assert.LessOrEqual(t, stats.LowStockAlerts+stats.CriticalItems, stats.TotalItems)
	assert.InDelta(t, 2.5*25, stats.MonthlySpend, 1e-9)
}

func TestDeleteMissingItem(t *testing.T) {
	svc := newTestService(newFakeStore())

	err := svc.Delete(context.Background(), adminSession(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestPermissionDenials(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()
	viewer := &models.Session{UID: "v-1", Roles: []models.Role{models.RoleViewer}}

	_, err := svc.List(ctx, viewer)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	_, err = svc.Create(ctx, staffSession(), feedInput())
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	_, err = svc.Stats(ctx, nil)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))

	assert.Empty(t, store.items)
}
