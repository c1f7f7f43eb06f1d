package roosters

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/auth"
	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

// Store is the rooster and breed persistence surface.
type Store interface {
	ListRoosters(ctx context.Context) ([]models.Rooster, error)
	GetRooster(ctx context.Context, id string) (*models.Rooster, error)
	InsertRooster(ctx context.Context, rooster models.Rooster) error
	ApplyRoosterPatch(ctx context.Context, id string, set map[string]any) (*models.Rooster, error)
	DeleteRooster(ctx context.Context, id string) (bool, error)
	CountRoostersByBreed(ctx context.Context, breed string) (int, error)
	ListBreeds(ctx context.Context) ([]models.Breed, error)
	GetBreed(ctx context.Context, id string) (*models.Breed, error)
	GetBreedByName(ctx context.Context, name string) (*models.Breed, error)
	InsertBreed(ctx context.Context, breed models.Breed) error
	DeleteBreed(ctx context.Context, id string) (bool, error)
}

var validStatuses = map[models.RoosterStatus]struct{}{
	models.RoosterAvailable: {},
	models.RoosterReserved:  {},
	models.RoosterSold:      {},
	models.RoosterDeceased:  {},
}

// Service implements the bird registry and the breed registry behind it.
type Service struct {
	store  Store
	gate   auth.Gate
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		gate:   auth.RoosterGate(),
		logger: logger,
		now:    time.Now,
	}
}

// List returns every bird as stored.
func (s *Service) List(ctx context.Context, sess *models.Session) ([]models.Rooster, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.store.ListRoosters(ctx)
}

// GetByID returns one bird or NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, sess *models.Session, id string) (*models.Rooster, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}

	rooster, err := s.store.GetRooster(ctx, id)
	if err != nil {
		return nil, err
	}
	if rooster == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "rooster %s not found", id)
	}
	return rooster, nil
}

// Create registers a bird. The breed must exist in the registry.
func (s *Service) Create(ctx context.Context, sess *models.Session, input models.CreateRoosterInput) (*models.Rooster, error) {
	if err := s.gate.Check(sess, auth.ActionCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	breed := strings.TrimSpace(input.Breed)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "name is required")
	}
	if breed == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "breed is required")
	}
	if err := s.ensureBreedKnown(ctx, breed); err != nil {
		return nil, err
	}
	if input.WeightKg != nil && (*input.WeightKg <= 0 || math.IsNaN(*input.WeightKg)) {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "weightKg must be positive")
	}

	now := models.DateOnly(s.now())
	id := uuid.NewString()
	rooster := models.Rooster{
		ID:          id,
		DisplayID:   models.FormatDisplayID(id, "", now),
		Name:        name,
		Breed:       breed,
		HatchDate:   input.HatchDate,
		WeightKg:    input.WeightKg,
		Price:       input.Price,
		Status:      models.RoosterAvailable,
		Description: input.Description,
		CreatedAt:   now,
	}

	if err := s.store.InsertRooster(ctx, rooster); err != nil {
		return nil, err
	}

	s.logger.Info("rooster registered",
		zap.String("rooster_id", rooster.ID),
		zap.String("breed", rooster.Breed))

	return &rooster, nil
}

// Update merges the provided fields onto one bird.
func (s *Service) Update(ctx context.Context, sess *models.Session, id string, input models.UpdateRoosterInput) (*models.Rooster, error) {
	if err := s.gate.Check(sess, auth.ActionUpdate); err != nil {
		return nil, err
	}

	set := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.New(apperrors.CodeInvalidRequest, "name must not be empty")
		}
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Breed != nil {
		breed := strings.TrimSpace(*input.Breed)
		if err := s.ensureBreedKnown(ctx, breed); err != nil {
			return nil, err
		}
		set["breed"] = breed
	}
	if input.Status != nil {
		if _, ok := validStatuses[*input.Status]; !ok {
			return nil, apperrors.Newf(apperrors.CodeInvalidRequest, "unknown status %s", *input.Status)
		}
		set["status"] = *input.Status
	}
	if input.HatchDate != nil {
		set["hatchDate"] = input.HatchDate.UTC()
	}
	if input.WeightKg != nil {
		if *input.WeightKg <= 0 || math.IsNaN(*input.WeightKg) {
			return nil, apperrors.New(apperrors.CodeInvalidRequest, "weightKg must be positive")
		}
		set["weightKg"] = *input.WeightKg
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}

	rooster, err := s.store.ApplyRoosterPatch(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if rooster == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "rooster %s not found", id)
	}
	return rooster, nil
}

// Delete removes one bird.
func (s *Service) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.gate.Check(sess, auth.ActionDelete); err != nil {
		return err
	}

	deleted, err := s.store.DeleteRooster(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.Newf(apperrors.CodeNotFound, "rooster %s not found", id)
	}
	return nil
}

// ListBreeds returns the breed registry.
func (s *Service) ListBreeds(ctx context.Context, sess *models.Session) ([]models.Breed, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.store.ListBreeds(ctx)
}

// CreateBreed adds a registry entry; names are unique.
func (s *Service) CreateBreed(ctx context.Context, sess *models.Session, name, origin, description string) (*models.Breed, error) {
	if err := s.gate.Check(sess, auth.ActionCreate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "name is required")
	}

	existing, err := s.store.GetBreedByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Newf(apperrors.CodeBreedExists, "breed %s already exists", name)
	}

	breed := models.Breed{
		ID:          uuid.NewString(),
		Name:        name,
		Origin:      strings.TrimSpace(origin),
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.InsertBreed(ctx, breed); err != nil {
		return nil, err
	}
	return &breed, nil
}

// DeleteBreed removes a registry entry unless a bird still references it.
func (s *Service) DeleteBreed(ctx context.Context, sess *models.Session, id string) error {
	if err := s.gate.Check(sess, auth.ActionDelete); err != nil {
		return err
	}

	breed, err := s.store.GetBreed(ctx, id)
	if err != nil {
		return err
	}
	if breed == nil {
		return apperrors.Newf(apperrors.CodeNotFound, "breed %s not found", id)
	}

	inUse, err := s.store.CountRoostersByBreed(ctx, breed.Name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperrors.Newf(apperrors.CodeBreedInUse, "breed %s is referenced by %d roosters", breed.Name, inUse)
	}

	deleted, err := s.store.DeleteBreed(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.Newf(apperrors.CodeNotFound, "breed %s not found", id)
	}
	return nil
}

func (s *Service) ensureBreedKnown(ctx context.Context, breed string) error {
	if breed == "" {
		return apperrors.New(apperrors.CodeInvalidRequest, "breed is required")
	}
	known, err := s.store.GetBreedByName(ctx, breed)
	if err != nil {
		return err
	}
	if known == nil {
		return apperrors.Newf(apperrors.CodeInvalidRequest, "breed %s is not registered", breed)
	}
	return nil
}
