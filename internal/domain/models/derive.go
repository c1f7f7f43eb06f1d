package models

import (
	"fmt"
	"strings"
	"time"
)

// CalculateStockStatus classifies a stock level against its minimum threshold.
// Zero or negative stock is always critical. A zero threshold never produces a
// false "low": any positive stock is adequate in that case.
func CalculateStockStatus(currentStock, minStock float64) StockStatus {
	if currentStock <= 0 {
		return StockCritical
	}
	if minStock <= 0 {
		return StockAdequate
	}
	if currentStock <= minStock*0.5 {
		return StockCritical
	}
	if currentStock <= minStock {
		return StockLow
	}
	return StockAdequate
}

// FormatDisplayID derives the short human-readable identifier shown in the
// dashboard: "#" + first four identifier characters uppercased + "-MMDD" from
// the given date. An already-assigned displayId wins and is only uppercased.
// The derivation is deterministic and idempotent.
func FormatDisplayID(id, displayID string, when time.Time) string {
	if displayID != "" {
		return strings.ToUpper(displayID)
	}

	prefix := id
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	prefix = strings.ToUpper(prefix)

	if when.IsZero() {
		return fmt.Sprintf("#%s-0000", prefix)
	}
	return fmt.Sprintf("#%s-%02d%02d", prefix, int(when.Month()), when.Day())
}

// DateOnly truncates a timestamp to midnight UTC; creation dates and restock
// dates are stored date-only.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
