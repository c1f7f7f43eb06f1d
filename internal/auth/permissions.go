package auth

import (
	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

// Action names a domain operation for permission purposes.
type Action string

const (
	ActionRead      Action = "read"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionRestock   Action = "restock"
	ActionReadStats Action = "readStats"
	ActionApprove   Action = "approve"
)

// Gate is a pure role classifier shared by every domain service. Staff actions
// are open to admin and staff; admin actions to admin only. Anything not
// listed is denied.
type Gate struct {
	staff map[Action]struct{}
	admin map[Action]struct{}
}

// NewGate builds a gate from the per-service action split.
func NewGate(staffActions, adminActions []Action) Gate {
	g := Gate{
		staff: make(map[Action]struct{}, len(staffActions)),
		admin: make(map[Action]struct{}, len(adminActions)),
	}
	for _, a := range staffActions {
		g.staff[a] = struct{}{}
	}
	for _, a := range adminActions {
		g.admin[a] = struct{}{}
	}
	return g
}

// Check decides whether the session may perform the action. A nil session is
// unauthenticated; an unknown action fails closed.
func (g Gate) Check(sess *models.Session, action Action) error {
	if sess == nil {
		return apperrors.New(apperrors.CodeUnauthenticated, "authentication required")
	}

	if _, ok := g.staff[action]; ok {
		if sess.HasRole(models.RoleAdmin) || sess.HasRole(models.RoleStaff) {
			return nil
		}
		return apperrors.Newf(apperrors.CodeForbidden, "role does not permit %s", action)
	}

	if _, ok := g.admin[action]; ok {
		if sess.HasRole(models.RoleAdmin) {
			return nil
		}
		return apperrors.Newf(apperrors.CodeForbidden, "role does not permit %s", action)
	}

	return apperrors.Newf(apperrors.CodeForbidden, "unknown action %s", action)
}

// InventoryGate covers the supply-stock service.
func InventoryGate() Gate {
	return NewGate(
		[]Action{ActionRead, ActionReadStats, ActionRestock},
		[]Action{ActionCreate, ActionUpdate, ActionDelete},
	)
}

// RoosterGate covers the bird and breed registries.
func RoosterGate() Gate {
	return NewGate(
		[]Action{ActionRead},
		[]Action{ActionCreate, ActionUpdate, ActionDelete},
	)
}

// SalesGate covers sales transactions; staff may record sales.
func SalesGate() Gate {
	return NewGate(
		[]Action{ActionRead, ActionReadStats, ActionCreate},
		[]Action{ActionUpdate, ActionDelete},
	)
}

// SupplierGate covers the supplier directory.
func SupplierGate() Gate {
	return NewGate(
		[]Action{ActionRead},
		[]Action{ActionCreate, ActionUpdate, ActionDelete},
	)
}

// ReviewGate covers review moderation. Public submission and the approved
// listing bypass the gate entirely at the route layer.
func ReviewGate() Gate {
	return NewGate(
		[]Action{ActionRead},
		[]Action{ActionApprove, ActionDelete},
	)
}
