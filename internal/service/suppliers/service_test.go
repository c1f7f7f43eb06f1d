package suppliers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

type fakeSupplierStore struct {
	suppliers map[string]models.Supplier
}

func newFakeSupplierStore() *fakeSupplierStore {
	return &fakeSupplierStore{suppliers: map[string]models.Supplier{}}
}

func (f *fakeSupplierStore) ListSuppliers(context.Context) ([]models.Supplier, error) {
	suppliers := make([]models.Supplier, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

func (f *fakeSupplierStore) GetSupplier(_ context.Context, id string) (*models.Supplier, error) {
	supplier, ok := f.suppliers[id]
	if !ok {
		return nil, nil
	}
	found := supplier
	return &found, nil
}

func (f *fakeSupplierStore) InsertSupplier(_ context.Context, supplier models.Supplier) error {
	f.suppliers[supplier.ID] = supplier
	return nil
}

func (f *fakeSupplierStore) ApplySupplierPatch(_ context.Context, id string, set map[string]any) (*models.Supplier, error) {
	supplier, ok := f.suppliers[id]
	if !ok {
		return nil, nil
	}
	for field, raw := range set {
		switch field {
		case "name":
			supplier.Name = raw.(string)
		case "contact":
			supplier.Contact = raw.(string)
		case "phone":
			supplier.Phone = raw.(string)
		case "email":
			supplier.Email = raw.(string)
		case "address":
			supplier.Address = raw.(string)
		case "categories":
			supplier.Categories = raw.([]string)
		}
	}
	f.suppliers[id] = supplier
	updated := supplier
	return &updated, nil
}

func (f *fakeSupplierStore) DeleteSupplier(_ context.Context, id string) (bool, error) {
	if _, ok := f.suppliers[id]; !ok {
		return false, nil
	}
	delete(f.suppliers, id)
	return true, nil
}

type fakeItemCounter struct {
	counts map[string]int
}

func (f *fakeItemCounter) CountItemsBySupplier(_ context.Context, supplier string) (int, error) {
	return f.counts[supplier], nil
}

func adminSession() *models.Session {
	return &models.Session{UID: "admin-1", Roles: []models.Role{models.RoleAdmin}}
}

func newTestService(store *fakeSupplierStore, counts map[string]int) *Service {
	if counts == nil {
		counts = map[string]int{}
	}
	svc := NewService(store, &fakeItemCounter{counts: counts}, nil)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestItemCountDerivedByNameScan(t *testing.T) {
	store := newFakeSupplierStore()
	svc := newTestService(store, map[string]int{"AgriFeeds": 3})
	ctx := context.Background()

	created, err := svc.Create(ctx, adminSession(), models.CreateSupplierInput{Name: "AgriFeeds"})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, adminSession(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.ItemCount)

	listed, err := svc.List(ctx, adminSession())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 3, listed[0].ItemCount)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(newFakeSupplierStore(), nil)

	_, err := svc.Create(context.Background(), adminSession(), models.CreateSupplierInput{Name: " "})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidRequest, apperrors.CodeOf(err))
}

func TestUpdateAndDelete(t *testing.T) {
	store := newFakeSupplierStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminSession(), models.CreateSupplierInput{Name: "AgriFeeds"})
	require.NoError(t, err)

	phone := "+224 600 00 00 00"
	updated, err := svc.Update(ctx, adminSession(), created.ID, models.UpdateSupplierInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "AgriFeeds", updated.Name)

	require.NoError(t, svc.Delete(ctx, adminSession(), created.ID))

	err = svc.Delete(ctx, adminSession(), created.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestStaffReadOnly(t *testing.T) {
	store := newFakeSupplierStore()
	svc := newTestService(store, nil)
	ctx := context.Background()
	staff := &models.Session{UID: "staff-1", Roles: []models.Role{models.RoleStaff}}

	_, err := svc.List(ctx, staff)
	assert.NoError(t, err)

	_, err = svc.Create(ctx, staff, models.CreateSupplierInput{Name: "X"})
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
}
