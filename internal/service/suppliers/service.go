package suppliers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/auth"
	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

// Store is the supplier persistence surface.
type Store interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*models.Supplier, error)
	InsertSupplier(ctx context.Context, supplier models.Supplier) error
	ApplySupplierPatch(ctx context.Context, id string, set map[string]any) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) (bool, error)
}

// ItemCounter reports how many inventory items carry a supplier's name. The
// link is by free-text name, so counts are recomputed on read, never stored.
type ItemCounter interface {
	CountItemsBySupplier(ctx context.Context, supplier string) (int, error)
}

// Service implements the supplier directory.
type Service struct {
	store  Store
	items  ItemCounter
	gate   auth.Gate
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new service instance.
func NewService(store Store, items ItemCounter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		items:  items,
		gate:   auth.SupplierGate(),
		logger: logger,
		now:    time.Now,
	}
}

// List returns every supplier with its derived item count.
func (s *Service) List(ctx context.Context, sess *models.Session) ([]models.Supplier, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}

	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range suppliers {
		count, err := s.items.CountItemsBySupplier(ctx, suppliers[i].Name)
		if err != nil {
			return nil, err
		}
		suppliers[i].ItemCount = count
	}
	return suppliers, nil
}

// GetByID returns one supplier with its derived item count, or NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, sess *models.Session, id string) (*models.Supplier, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}

	supplier, err := s.store.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "supplier %s not found", id)
	}

	count, err := s.items.CountItemsBySupplier(ctx, supplier.Name)
	if err != nil {
		return nil, err
	}
	supplier.ItemCount = count
	return supplier, nil
}

// Create registers a supplier.
func (s *Service) Create(ctx context.Context, sess *models.Session, input models.CreateSupplierInput) (*models.Supplier, error) {
	if err := s.gate.Check(sess, auth.ActionCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "name is required")
	}

	supplier := models.Supplier{
		ID:         uuid.NewString(),
		Name:       name,
		Contact:    strings.TrimSpace(input.Contact),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      strings.TrimSpace(input.Email),
		Address:    strings.TrimSpace(input.Address),
		Categories: input.Categories,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.InsertSupplier(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier registered", zap.String("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	return &supplier, nil
}

// Update merges the provided fields onto one supplier.
func (s *Service) Update(ctx context.Context, sess *models.Session, id string, input models.UpdateSupplierInput) (*models.Supplier, error) {
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
	if input.Contact != nil {
		set["contact"] = strings.TrimSpace(*input.Contact)
	}
	if input.Phone != nil {
		set["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		set["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		set["address"] = strings.TrimSpace(*input.Address)
	}
	if input.Categories != nil {
		set["categories"] = *input.Categories
	}

	supplier, err := s.store.ApplySupplierPatch(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "supplier %s not found", id)
	}

	count, err := s.items.CountItemsBySupplier(ctx, supplier.Name)
	if err != nil {
		return nil, err
	}
	supplier.ItemCount = count
	return supplier, nil
}

// Delete removes one supplier. Inventory items keep their free-text supplier
// name; nothing cascades.
func (s *Service) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.gate.Check(sess, auth.ActionDelete); err != nil {
		return err
	}

	deleted, err := s.store.DeleteSupplier(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.Newf(apperrors.CodeNotFound, "supplier %s not found", id)
	}
	return nil
}
