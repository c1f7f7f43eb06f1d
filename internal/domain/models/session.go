package models

// Role identifies what a caller is allowed to do across the dashboard.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleViewer Role = "viewer"
)

// Session is the resolved identity of an authenticated caller, as returned by
// the external identity provider. The core logic only ever sees this pair.
type Session struct {
	UID   string `json:"uid"`
	Roles []Role `json:"roles"`
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role Role) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SystemSession returns the implicit admin identity used by in-process jobs
// such as the scheduled stock report.
func SystemSession() *Session {
	return &Session{UID: "system", Roles: []Role{RoleAdmin}}
}
