package inventory

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

const defaultActivityLimit = 50

// Store is the persistence surface the service needs. The MongoDB adapter
// implements it; tests substitute an in-memory fake.
type Store interface {
	ListItems(ctx context.Context) ([]models.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*models.InventoryItem, error)
	InsertItem(ctx context.Context, item models.InventoryItem) error
	ApplyItemPatch(ctx context.Context, id string, set map[string]any, unset []string) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) (bool, error)
	SaveStats(ctx context.Context, stats models.InventoryStats) error
	AppendActivity(ctx context.Context, activity models.InventoryActivity) error
	ListActivity(ctx context.Context, limit int64) ([]models.InventoryActivity, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the inventory item lifecycle. Every mutation commits the
// item write and the stats recompute as one atomic pair.
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
		gate:   auth.InventoryGate(),
		logger: logger,
		now:    time.Now,
	}
}

// List returns every item as stored.
func (s *Service) List(ctx context.Context, sess *models.Session) ([]models.InventoryItem, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.store.ListItems(ctx)
}

// GetByID returns one item or NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, sess *models.Session, id string) (*models.InventoryItem, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "inventory item %s not found", id)
	}
	return item, nil
}

// Create registers a new item and recomputes the stats singleton atomically.
func (s *Service) Create(ctx context.Context, sess *models.Session, input models.CreateInventoryInput) (*models.InventoryItem, error) {
	if err := s.gate.Check(sess, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	today := models.DateOnly(s.now())
	lastRestocked := today
	if input.LastRestocked != nil {
		lastRestocked = models.DateOnly(*input.LastRestocked)
	}

	id := uuid.NewString()
	item := models.InventoryItem{
		ID:            id,
		DisplayID:     models.FormatDisplayID(id, "", today),
		Name:          strings.TrimSpace(input.Name),
		Category:      strings.TrimSpace(input.Category),
		CurrentStock:  *input.CurrentStock,
		MinStock:      *input.MinStock,
		Unit:          strings.TrimSpace(input.Unit),
		Supplier:      strings.TrimSpace(input.Supplier),
		Price:         input.Price,
		Location:      input.Location,
		Description:   input.Description,
		ExpiryDate:    input.ExpiryDate,
		Status:        models.CalculateStockStatus(*input.CurrentStock, *input.MinStock),
		CreatedAt:     today,
		LastRestocked: lastRestocked,
	}

	err := s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.store.InsertItem(txCtx, item); err != nil {
			return err
		}
		_, err := s.recomputeStats(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory item created",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("status", string(item.Status)))

	return &item, nil
}

// Update merges only the provided fields onto the stored document. A field
// present with a null value is removed; an absent field is left untouched.
// Status is recomputed from the resulting stock pair.
func (s *Service) Update(ctx context.Context, sess *models.Session, id string, patch map[string]any) (*models.InventoryItem, error) {
	if err := s.gate.Check(sess, auth.ActionUpdate); err != nil {
		return nil, err
	}

	var updated *models.InventoryItem
	err := s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.store.GetItem(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.Newf(apperrors.CodeNotFound, "inventory item %s not found", id)
		}

		set, unset, err := buildItemPatch(existing, patch)
		if err != nil {
			return err
		}

		updated, err = s.store.ApplyItemPatch(txCtx, id, set, unset)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperrors.Newf(apperrors.CodeNotFound, "inventory item %s not found", id)
		}

		_, err = s.recomputeStats(txCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes the item and recomputes stats atomically.
func (s *Service) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.gate.Check(sess, auth.ActionDelete); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.store.DeleteItem(txCtx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.Newf(apperrors.CodeNotFound, "inventory item %s not found", id)
		}
		_, err = s.recomputeStats(txCtx)
		return err
	})
}

// Restock adds a strictly positive amount to the stock level and bumps the
// restock date. The activity record is appended best-effort after commit.
func (s *Service) Restock(ctx context.Context, sess *models.Session, id string, amount float64) (*models.InventoryItem, error) {
	if err := s.gate.Check(sess, auth.ActionRestock); err != nil {
		return nil, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidRestockAmount, "restock amount must be a positive number")
	}

	updated, before, err := s.adjustStock(ctx, id, amount, func(item *models.InventoryItem, set map[string]any) {
		set["lastRestocked"] = models.DateOnly(s.now())
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, sess, updated, amount, before, "Restocked")
	return updated, nil
}

// Consume subtracts a strictly positive amount from the stock level. Stock is
// not clamped at zero: over-consumption drives it negative, which the status
// formula reports as critical.
func (s *Service) Consume(ctx context.Context, sess *models.Session, id string, amount float64, reason string) (*models.InventoryItem, error) {
	if err := s.gate.Check(sess, auth.ActionRestock); err != nil {
		return nil, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "consume amount must be a positive number")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.New(apperrors.CodeReasonRequired, "a reason is required to consume stock")
	}

	updated, before, err := s.adjustStock(ctx, id, -amount, nil)
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, sess, updated, -amount, before, strings.TrimSpace(reason))
	return updated, nil
}

// Stats recomputes the aggregate by scanning the full collection, persists the
// fresh value, and returns it. Reads never trust the cached singleton.
func (s *Service) Stats(ctx context.Context, sess *models.Session) (*models.InventoryStats, error) {
	if err := s.gate.Check(sess, auth.ActionReadStats); err != nil {
		return nil, err
	}
	return s.recomputeStats(ctx)
}

// Activity returns the most recent restock and consume records.
func (s *Service) Activity(ctx context.Context, sess *models.Session) ([]models.InventoryActivity, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.store.ListActivity(ctx, defaultActivityLimit)
}

// adjustStock applies a signed stock delta and the stats recompute inside one
// transaction, returning the updated item and the stock level before.
func (s *Service) adjustStock(ctx context.Context, id string, delta float64, extra func(*models.InventoryItem, map[string]any)) (*models.InventoryItem, float64, error) {
	var updated *models.InventoryItem
	var before float64

	err := s.store.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.store.GetItem(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.Newf(apperrors.CodeNotFound, "inventory item %s not found", id)
		}

		before = existing.CurrentStock
		newStock := existing.CurrentStock + delta

		set := map[string]any{
			"currentStock": newStock,
			"status":       models.CalculateStockStatus(newStock, existing.MinStock),
		}
		if extra != nil {
			extra(existing, set)
		}

		updated, err = s.store.ApplyItemPatch(txCtx, id, set, nil)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperrors.Newf(apperrors.CodeNotFound, "inventory item %s not found", id)
		}

		_, err = s.recomputeStats(txCtx)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return updated, before, nil
}

// appendActivity records an audit entry after the stock change committed. The
// write is best-effort: a failure is logged, never surfaced.
func (s *Service) appendActivity(ctx context.Context, sess *models.Session, item *models.InventoryItem, amount, before float64, reason string) {
	activity := models.InventoryActivity{
		ID:          uuid.NewString(),
		ItemID:      item.ID,
		ItemName:    item.Name,
		Amount:      amount,
		Unit:        item.Unit,
		Reason:      reason,
		StockBefore: before,
		StockAfter:  item.CurrentStock,
		Actor:       sess.UID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.AppendActivity(ctx, activity); err != nil {
		s.logger.Warn("failed to append inventory activity",
			zap.String("item_id", item.ID),
			zap.Error(err))
	}
}

// recomputeStats folds over the current collection and overwrites the
// singleton. The fold is pure, so concurrent last-writer-wins overwrites stay
// logically correct.
func (s *Service) recomputeStats(ctx context.Context) (*models.InventoryStats, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	stats := models.InventoryStats{UpdatedAt: s.now().UTC()}
	for _, item := range items {
		stats.TotalItems++
		switch item.Status {
		case models.StockLow:
			stats.LowStockAlerts++
		case models.StockCritical:
			stats.CriticalItems++
		}
		if item.Price != nil {
			stats.MonthlySpend += *item.Price * item.CurrentStock
		}
	}

	if err := s.store.SaveStats(ctx, stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func validateCreateInput(input models.CreateInventoryInput) error {
	required := map[string]string{
		"name":     input.Name,
		"category": input.Category,
		"unit":     input.Unit,
		"supplier": input.Supplier,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return apperrors.Newf(apperrors.CodeInvalidRequest, "%s is required", field)
		}
	}

	if input.CurrentStock == nil || math.IsNaN(*input.CurrentStock) || math.IsInf(*input.CurrentStock, 0) {
		return apperrors.New(apperrors.CodeInvalidRequest, "currentStock must be a number")
	}
	if input.MinStock == nil || math.IsNaN(*input.MinStock) || math.IsInf(*input.MinStock, 0) {
		return apperrors.New(apperrors.CodeInvalidRequest, "minStock must be a number")
	}
	if *input.CurrentStock < 0 || *input.MinStock < 0 {
		return apperrors.New(apperrors.CodeInvalidRequest, "stock levels must not be negative")
	}
	return nil
}

// buildItemPatch turns a raw JSON patch into set/unset maps, preserving the
// present/null/absent tri-state. Null removes optional fields only; required
// fields reject null. Status is always recomputed from the merged stock pair.
func buildItemPatch(existing *models.InventoryItem, patch map[string]any) (map[string]any, []string, error) {
	set := map[string]any{}
	var unset []string

	currentStock := existing.CurrentStock
	minStock := existing.MinStock

	for field, raw := range patch {
		switch field {
		case "name", "category", "unit", "supplier":
			value, err := requireString(field, raw)
			if err != nil {
				return nil, nil, err
			}
			set[field] = value

		case "currentStock", "minStock":
			value, err := requireNumber(field, raw)
			if err != nil {
				return nil, nil, err
			}
			set[field] = value
			if field == "currentStock" {
				currentStock = value
			} else {
				minStock = value
			}

		case "price":
			if raw == nil {
				unset = append(unset, field)
				continue
			}
			value, err := requireNumber(field, raw)
			if err != nil {
				return nil, nil, err
			}
			set[field] = value

		case "location", "description":
			if raw == nil {
				unset = append(unset, field)
				continue
			}
			value, ok := raw.(string)
			if !ok {
				return nil, nil, apperrors.Newf(apperrors.CodeInvalidRequest, "%s must be a string", field)
			}
			set[field] = value

		case "expiryDate":
			if raw == nil {
				unset = append(unset, field)
				continue
			}
			value, err := requireDate(field, raw)
			if err != nil {
				return nil, nil, err
			}
			set[field] = value

		case "lastRestocked":
			value, err := requireDate(field, raw)
			if err != nil {
				return nil, nil, err
			}
			set[field] = models.DateOnly(value)

		case "id", "displayId", "status", "createdAt":
			return nil, nil, apperrors.Newf(apperrors.CodeInvalidRequest, "%s cannot be updated", field)

		default:
			return nil, nil, apperrors.Newf(apperrors.CodeInvalidRequest, "unknown field %s", field)
		}
	}

	set["status"] = models.CalculateStockStatus(currentStock, minStock)
	return set, unset, nil
}

func requireString(field string, raw any) (string, error) {
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", apperrors.Newf(apperrors.CodeInvalidRequest, "%s must be a non-empty string", field)
	}
	return strings.TrimSpace(value), nil
}

func requireNumber(field string, raw any) (float64, error) {
	value, ok := raw.(float64)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.Newf(apperrors.CodeInvalidRequest, "%s must be a number", field)
	}
	return value, nil
}

func requireDate(field string, raw any) (time.Time, error) {
	value, ok := raw.(string)
	if !ok {
		return time.Time{}, apperrors.Newf(apperrors.CodeInvalidRequest, "%s must be a date string", field)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, apperrors.Newf(apperrors.CodeInvalidRequest, "%s is not a valid date", field)
}
