package domain

import (
	"database/sql/driver"
	"encoding/json"
	"sort"
	"strings"
)

// Module identifiers a permission set may grant.
const (
	ModuleDashboard   = "dashboard"
	ModuleMembers     = "members"
	ModuleDeposits    = "deposits"
	ModuleLoans       = "loans"
	ModuleInvestments = "investments"
	ModuleDonations   = "donations"
	ModuleIncome      = "income"
	ModuleExpenses    = "expenses"
	ModuleReports     = "reports"
	ModuleActivities  = "activities"
	ModuleUsers       = "users"

	// PermissionAll is the sentinel granting every module.
	PermissionAll = "all"
)

// AllModules lists every grantable module identifier.
var AllModules = []string{
	ModuleDashboard,
	ModuleMembers,
	ModuleDeposits,
	ModuleLoans,
	ModuleInvestments,
	ModuleDonations,
	ModuleIncome,
	ModuleExpenses,
	ModuleReports,
	ModuleActivities,
	ModuleUsers,
}

// PermissionSet is the canonical set-of-strings form of a user's module
// permissions. The legacy users table stored this column sometimes as a JSON
// array and sometimes as a JSON string containing an array; NormalizePermissions
// accepts either and fails closed (empty set) on anything malformed, so a
// corrupt row can never grant access.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from explicit module identifiers.
func NewPermissionSet(modules ...string) PermissionSet {
	ps := make(PermissionSet, len(modules))
	for _, m := range modules {
		m = strings.TrimSpace(m)
		if m != "" {
			ps[m] = struct{}{}
		}
	}
	return ps
}

// NormalizePermissions converts any of the representations seen in the wild
// into a PermissionSet: a []string, a JSON array text, or a JSON string that
// itself wraps an array.
func NormalizePermissions(raw interface{}) PermissionSet {
	switch v := raw.(type) {
	case nil:
		return PermissionSet{}
	case PermissionSet:
		return v
	case []string:
		return NewPermissionSet(v...)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				items = append(items, s)
			}
		}
		return NewPermissionSet(items...)
	case []byte:
		return parsePermissionText(string(v))
	case string:
		return parsePermissionText(v)
	default:
		return PermissionSet{}
	}
}

func parsePermissionText(text string) PermissionSet {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return PermissionSet{}
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return NewPermissionSet(items...)
	}
	// Double-encoded: a JSON string whose content is the array.
	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &items); err == nil {
			return NewPermissionSet(items...)
		}
	}
	return PermissionSet{}
}

// Contains reports membership, honoring the "all" sentinel.
func (ps PermissionSet) Contains(moduleID string) bool {
	if ps == nil {
		return false
	}
	if _, ok := ps[PermissionAll]; ok {
		return true
	}
	_, ok := ps[moduleID]
	return ok
}

// Slice returns the sorted module identifiers.
func (ps PermissionSet) Slice() []string {
	out := make([]string, 0, len(ps))
	for m := range ps {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted JSON array.
func (ps PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ps.Slice())
}

// UnmarshalJSON accepts an array or the legacy string-wrapped array.
func (ps *PermissionSet) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*ps = PermissionSet{}
		return nil
	}
	*ps = NormalizePermissions(raw)
	return nil
}

// Scan implements sql.Scanner for the TEXT permissions column.
func (ps *PermissionSet) Scan(src interface{}) error {
	*ps = NormalizePermissions(src)
	return nil
}

// Value stores the set as a JSON array text.
func (ps PermissionSet) Value() (driver.Value, error) {
	b, err := json.Marshal(ps.Slice())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
