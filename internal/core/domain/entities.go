package domain

// Role represents user role in the system
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Member status
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
)

// Loan lifecycle states. A loan moves active → completed automatically when
// repaid in full, or active → defaulted by operator action. Both end states
// are terminal.
const (
	LoanActive    = "active"
	LoanCompleted = "completed"
	LoanDefaulted = "defaulted"
)

// Investment status
const (
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
)

// Session is the authenticated user's public projection: what a request
// carries around instead of a hidden global. The password hash is never
// part of it.
type Session struct {
	UserID      uint          `json:"user_id"`
	Name        string        `json:"name"`
	Username    string        `json:"username"`
	Role        Role          `json:"role"`
	Permissions PermissionSet `json:"permissions"`
}

// HasPermission reports whether the session may act on a module. Superadmins
// pass unconditionally; the dashboard is everyone's landing page; otherwise
// membership in the permission set (or the "all" sentinel) decides.
func (s *Session) HasPermission(moduleID string) bool {
	if s == nil {
		return false
	}
	if s.Role == RoleSuperAdmin {
		return true
	}
	if moduleID == ModuleDashboard {
		return true
	}
	return s.Permissions.Contains(moduleID)
}
