package roosters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

type fakeRoosterStore struct {
	roosters map[string]models.Rooster
	breeds   map[string]models.Breed
}

func newFakeRoosterStore() *fakeRoosterStore {
	return &fakeRoosterStore{
		roosters: map[string]models.Rooster{},
		breeds:   map[string]models.Breed{},
	}
}

func (f *fakeRoosterStore) ListRoosters(context.Context) ([]models.Rooster, error) {
	roosters := make([]models.Rooster, 0, len(f.roosters))
	for _, r := range f.roosters {
		roosters = append(roosters, r)
	}
	return roosters, nil
}

func (f *fakeRoosterStore) GetRooster(_ context.Context, id string) (*models.Rooster, error) {
	rooster, ok := f.roosters[id]
	if !ok {
		return nil, nil
	}
	found := rooster
	return &found, nil
}

func (f *fakeRoosterStore) InsertRooster(_ context.Context, rooster models.Rooster) error {
	f.roosters[rooster.ID] = rooster
	return nil
}

func (f *fakeRoosterStore) ApplyRoosterPatch(_ context.Context, id string, set map[string]any) (*models.Rooster, error) {
	rooster, ok := f.roosters[id]
	if !ok {
		return nil, nil
	}
	for field, raw := range set {
		switch field {
		case "name":
			rooster.Name = raw.(string)
		case "breed":
			rooster.Breed = raw.(string)
		case "status":
			rooster.Status = raw.(models.RoosterStatus)
		case "hatchDate":
			value := raw.(time.Time)
			rooster.HatchDate = &value
		case "weightKg":
			value := raw.(float64)
			rooster.WeightKg = &value
		case "price":
			value := raw.(float64)
			rooster.Price = &value
		case "description":
			value := raw.(string)
			rooster.Description = &value
		}
	}
	f.roosters[id] = rooster
	updated := rooster
	return &updated, nil
}

func (f *fakeRoosterStore) DeleteRooster(_ context.Context, id string) (bool, error) {
	if _, ok := f.roosters[id]; !ok {
		return false, nil
	}
	delete(f.roosters, id)
	return true, nil
}

func (f *fakeRoosterStore) CountRoostersByBreed(_ context.Context, breed string) (int, error) {
	count := 0
	for _, r := range f.roosters {
		if r.Breed == breed {
			count++
		}
	}
	return count, nil
}

func (f *fakeRoosterStore) ListBreeds(context.Context) ([]models.Breed, error) {
	breeds := make([]models.Breed, 0, len(f.breeds))
	for _, b := range f.breeds {
		breeds = append(breeds, b)
	}
	return breeds, nil
}

func (f *fakeRoosterStore) GetBreed(_ context.Context, id string) (*models.Breed, error) {
	breed, ok := f.breeds[id]
	if !ok {
		return nil, nil
	}
	found := breed
	return &found, nil
}

func (f *fakeRoosterStore) GetBreedByName(_ context.Context, name string) (*models.Breed, error) {
	for _, b := range f.breeds {
		if b.Name == name {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRoosterStore) InsertBreed(_ context.Context, breed models.Breed) error {
	f.breeds[breed.ID] = breed
	return nil
}

func (f *fakeRoosterStore) DeleteBreed(_ context.Context, id string) (bool, error) {
	if _, ok := f.breeds[id]; !ok {
		return false, nil
	}
	delete(f.breeds, id)
	return true, nil
}

func adminSession() *models.Session {
	return &models.Session{UID: "admin-1", Roles: []models.Role{models.RoleAdmin}}
}

func staffSession() *models.Session {
	return &models.Session{UID: "staff-1", Roles: []models.Role{models.RoleStaff}}
}

func newTestService(store *fakeRoosterStore) *Service {
	svc := NewService(store, nil)
	svc.now = func() time.Time {
		return time.Date(2025, time.July, 8, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func registerBreed(t *testing.T, svc *Service, name string) *models.Breed {
	t.Helper()
	breed, err := svc.CreateBreed(context.Background(), adminSession(), name, "", "")
	require.NoError(t, err)
	return breed
}

func TestCreateRequiresRegisteredBreed(t *testing.T) {
	store := newFakeRoosterStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminSession(), models.CreateRoosterInput{Name: "Kokou", Breed: "Sussex"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidRequest, apperrors.CodeOf(err))

	registerBreed(t, svc, "Sussex")

	rooster, err := svc.Create(ctx, adminSession(), models.CreateRoosterInput{Name: "Kokou", Breed: "Sussex"})
	require.NoError(t, err)
	assert.Equal(t, models.RoosterAvailable, rooster.Status)
	assert.Regexp(t, `^#[0-9A-F]{4}-0708$`, rooster.DisplayID)
}

func TestCreateBreedConflict(t *testing.T) {
	svc := newTestService(newFakeRoosterStore())

	registerBreed(t, svc, "Leghorn")

	_, err := svc.CreateBreed(context.Background(), adminSession(), "Leghorn", "Italy", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBreedExists, apperrors.CodeOf(err))
}

func TestDeleteBreedInUse(t *testing.T) {
	store := newFakeRoosterStore()
	svc := newTestService(store)
	ctx := context.Background()

	breed := registerBreed(t, svc, "Brahma")
	_, err := svc.Create(ctx, adminSession(), models.CreateRoosterInput{Name: "Gros Coq", Breed: "Brahma"})
	require.NoError(t, err)

	err = svc.DeleteBreed(ctx, adminSession(), breed.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBreedInUse, apperrors.CodeOf(err))

	// Once the referencing bird is gone the breed can be removed.
	for id := range store.roosters {
		require.NoError(t, svc.Delete(ctx, adminSession(), id))
	}
	require.NoError(t, svc.DeleteBreed(ctx, adminSession(), breed.ID))
}

func TestUpdateStatusValidation(t *testing.T) {
	store := newFakeRoosterStore()
	svc := newTestService(store)
	ctx := context.Background()

	registerBreed(t, svc, "Sussex")
	rooster, err := svc.Create(ctx, adminSession(), models.CreateRoosterInput{Name: "Kokou", Breed: "Sussex"})
	require.NoError(t, err)

	bad := models.RoosterStatus("flying")
	_, err = svc.Update(ctx, adminSession(), rooster.ID, models.UpdateRoosterInput{Status: &bad})
	assert.Equal(t, apperrors.CodeInvalidRequest, apperrors.CodeOf(err))

	reserved := models.RoosterReserved
	updated, err := svc.Update(ctx, adminSession(), rooster.ID, models.UpdateRoosterInput{Status: &reserved})
	require.NoError(t, err)
	assert.Equal(t, models.RoosterReserved, updated.Status)
}

func TestStaffCannotMutate(t *testing.T) {
	store := newFakeRoosterStore()
	svc := newTestService(store)
	ctx := context.Background()

	registerBreed(t, svc, "Sussex")

	_, err := svc.Create(ctx, staffSession(), models.CreateRoosterInput{Name: "Kokou", Breed: "Sussex"})
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

	_, err = svc.List(ctx, staffSession())
	assert.NoError(t, err)

	_, err = svc.List(ctx, nil)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(newFakeRoosterStore())

	_, err := svc.GetByID(context.Background(), adminSession(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
