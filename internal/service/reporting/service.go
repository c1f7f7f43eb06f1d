package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/models"
	repo "github.com/oumarbarry/coqdor/internal/repository/sheets"
	"github.com/oumarbarry/coqdor/internal/service/inventory"
)

const (
	dateLayout    = "2006-01-02"
	summaryRange  = "Summary!A:F"
	alertsRange   = "Alerts!A:G"
	exportTimeout = 2 * time.Minute
)

// Service exports a daily snapshot of the stock situation to a spreadsheet the
// farm owner already works in.
type Service struct {
	inventorySvc *inventory.Service
	repo         repo.Repository
	logger       *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(inventorySvc *inventory.Service, repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{inventorySvc: inventorySvc, repo: repository, logger: logger}
}

// ExportDailyStockReport appends one summary row plus one row per item that
// needs attention. The export runs under the system identity so it passes the
// same permission checks as any staff request.
func (s *Service) ExportDailyStockReport(ctx context.Context, when time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	sess := models.SystemSession()
	day := when.UTC().Format(dateLayout)

	stats, err := s.inventorySvc.Stats(ctx, sess)
	if err != nil {
		return fmt.Errorf("load inventory stats: %w", err)
	}

	summary := []interface{}{
		day,
		stats.TotalItems,
		stats.LowStockAlerts,
		stats.CriticalItems,
		stats.MonthlySpend,
		stats.UpdatedAt.Format(time.RFC3339),
	}
	if err := s.repo.WriteRow(ctx, summaryRange, summary); err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}

	items, err := s.inventorySvc.List(ctx, sess)
	if err != nil {
		return fmt.Errorf("load inventory items: %w", err)
	}

	var alerts int
	for _, item := range items {
		if item.Status == models.StockAdequate {
			continue
		}

		row := []interface{}{
			day,
			item.DisplayID,
			item.Name,
			item.Category,
			item.CurrentStock,
			item.MinStock,
			string(item.Status),
		}
		if err := s.repo.WriteRow(ctx, alertsRange, row); err != nil {
			return fmt.Errorf("append alert row for %s: %w", item.ID, err)
		}
		alerts++
	}

	s.logger.Info("daily stock report exported",
		zap.String("day", day),
		zap.Int("total_items", stats.TotalItems),
		zap.Int("alert_rows", alerts))
	return nil
}
