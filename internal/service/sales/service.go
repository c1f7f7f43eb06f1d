package sales

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

// Store is the sales persistence surface.
type Store interface {
	ListSales(ctx context.Context) ([]models.SalesTransaction, error)
	GetSale(ctx context.Context, id string) (*models.SalesTransaction, error)
	InsertSale(ctx context.Context, sale models.SalesTransaction) error
	ApplySalePatch(ctx context.Context, id string, set map[string]any) (*models.SalesTransaction, error)
	DeleteSale(ctx context.Context, id string) (bool, error)
}

// RoosterMarker lets a recorded sale flip the referenced bird to sold. The
// link is informational: a missing bird never fails the sale.
type RoosterMarker interface {
	GetRooster(ctx context.Context, id string) (*models.Rooster, error)
	ApplyRoosterPatch(ctx context.Context, id string, set map[string]any) (*models.Rooster, error)
}

// Service implements the sales transaction surface.
type Service struct {
	store    Store
	roosters RoosterMarker
	gate     auth.Gate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new service instance.
func NewService(store Store, roosters RoosterMarker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		roosters: roosters,
		gate:     auth.SalesGate(),
		logger:   logger,
		now:      time.Now,
	}
}

// List returns every transaction.
func (s *Service) List(ctx context.Context, sess *models.Session) ([]models.SalesTransaction, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.store.ListSales(ctx)
}

// GetByID returns one transaction or NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, sess *models.Session, id string) (*models.SalesTransaction, error) {
	if err := s.gate.Check(sess, auth.ActionRead); err != nil {
		return nil, err
	}

	sale, err := s.store.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "sale %s not found", id)
	}
	return sale, nil
}

// Create records a sale and, when the referenced rooster exists, marks it sold.
func (s *Service) Create(ctx context.Context, sess *models.Session, input models.CreateSaleInput) (*models.SalesTransaction, error) {
	if err := s.gate.Check(sess, auth.ActionCreate); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Buyer) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "buyer is required")
	}
	if input.Amount == nil || math.IsNaN(*input.Amount) || math.IsInf(*input.Amount, 0) || *input.Amount <= 0 {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "amount must be a positive number")
	}

	soldAt := s.now().UTC()
	if input.SoldAt != nil {
		soldAt = input.SoldAt.UTC()
	}

	id := uuid.NewString()
	sale := models.SalesTransaction{
		ID:            id,
		DisplayID:     models.FormatDisplayID(id, "", soldAt),
		RoosterID:     strings.TrimSpace(input.RoosterID),
		RoosterName:   strings.TrimSpace(input.RoosterName),
		Buyer:         strings.TrimSpace(input.Buyer),
		Amount:        *input.Amount,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Notes:         input.Notes,
		SoldAt:        soldAt,
		CreatedAt:     s.now().UTC(),
	}

	if sale.RoosterID != "" {
		rooster, err := s.roosters.GetRooster(ctx, sale.RoosterID)
		if err != nil {
			return nil, err
		}
		if rooster != nil {
			if sale.RoosterName == "" {
				sale.RoosterName = rooster.Name
			}
			if _, err := s.roosters.ApplyRoosterPatch(ctx, rooster.ID, map[string]any{"status": models.RoosterSold}); err != nil {
				return nil, err
			}
		} else {
			s.logger.Warn("sale references unknown rooster", zap.String("rooster_id", sale.RoosterID))
		}
	}

	if err := s.store.InsertSale(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.Float64("amount", sale.Amount),
		zap.String("buyer", sale.Buyer))

	return &sale, nil
}

// Update merges the provided fields onto one transaction.
func (s *Service) Update(ctx context.Context, sess *models.Session, id string, input models.UpdateSaleInput) (*models.SalesTransaction, error) {
	if err := s.gate.Check(sess, auth.ActionUpdate); err != nil {
		return nil, err
	}

	set := map[string]any{}
	if input.Buyer != nil {
		if strings.TrimSpace(*input.Buyer) == "" {
			return nil, apperrors.New(apperrors.CodeInvalidRequest, "buyer must not be empty")
		}
		set["buyer"] = strings.TrimSpace(*input.Buyer)
	}
	if input.Amount != nil {
		if math.IsNaN(*input.Amount) || math.IsInf(*input.Amount, 0) || *input.Amount <= 0 {
			return nil, apperrors.New(apperrors.CodeInvalidRequest, "amount must be a positive number")
		}
		set["amount"] = *input.Amount
	}
	if input.PaymentMethod != nil {
		set["paymentMethod"] = strings.TrimSpace(*input.PaymentMethod)
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
	}
	if input.SoldAt != nil {
		set["soldAt"] = input.SoldAt.UTC()
	}

	sale, err := s.store.ApplySalePatch(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "sale %s not found", id)
	}
	return sale, nil
}

// Delete removes one transaction.
func (s *Service) Delete(ctx context.Context, sess *models.Session, id string) error {
	if err := s.gate.Check(sess, auth.ActionDelete); err != nil {
		return err
	}

	deleted, err := s.store.DeleteSale(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.Newf(apperrors.CodeNotFound, "sale %s not found", id)
	}
	return nil
}

// Stats folds over every transaction and reports totals plus the
// month-over-month revenue change.
func (s *Service) Stats(ctx context.Context, sess *models.Session) (*models.SalesStats, error) {
	if err := s.gate.Check(sess, auth.ActionReadStats); err != nil {
		return nil, err
	}

	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	stats := models.SalesStats{}
	var prevMonthRevenue float64

	for _, sale := range sales {
		stats.TotalSales++
		stats.TotalRevenue += sale.Amount

		soldAt := sale.SoldAt.UTC()
		switch {
		case !soldAt.Before(monthStart):
			stats.MonthRevenue += sale.Amount
		case !soldAt.Before(prevMonthStart):
			prevMonthRevenue += sale.Amount
		}
	}

	switch {
	case prevMonthRevenue > 0:
		pct := (stats.MonthRevenue - prevMonthRevenue) / prevMonthRevenue * 100
		stats.MonthChangePct = math.Round(pct*100) / 100
	case stats.MonthRevenue > 0:
		stats.MonthChangePct = 100
	}

	return &stats, nil
}
