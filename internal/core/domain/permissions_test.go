package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePermissions(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want []string
	}{
		{"string slice", []string{"members", "loans"}, []string{"loans", "members"}},
		{"json array text", `["members","deposits"]`, []string{"deposits", "members"}},
		{"double-encoded array", `"[\"members\",\"loans\"]"`, []string{"loans", "members"}},
		{"byte slice column", []byte(`["reports"]`), []string{"reports"}},
		{"whitespace trimmed", []string{" members ", ""}, []string{"members"}},
		{"nil", nil, []string{}},
		{"null text", "null", []string{}},
		{"empty text", "", []string{}},
		{"malformed json fails closed", `{"members": true}`, []string{}},
		{"junk text fails closed", "members,loans", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePermissions(tc.raw).Slice())
		})
	}
}

func TestPermissionSetContains(t *testing.T) {
	ps := NewPermissionSet(ModuleMembers, ModuleLoans)

	assert.True(t, ps.Contains(ModuleMembers))
	assert.True(t, ps.Contains(ModuleLoans))
	assert.False(t, ps.Contains(ModuleUsers))

	all := NewPermissionSet(PermissionAll)
	for _, m := range AllModules {
		assert.True(t, all.Contains(m))
	}

	var nilSet PermissionSet
	assert.False(t, nilSet.Contains(ModuleMembers))
}

func TestSessionHasPermission(t *testing.T) {
	t.Run("superadmin passes every module", func(t *testing.T) {
		s := &Session{Role: RoleSuperAdmin}
		for _, m := range AllModules {
			assert.True(t, s.HasPermission(m))
		}
	})

	t.Run("dashboard is open to every authenticated user", func(t *testing.T) {
		s := &Session{Role: RoleUser, Permissions: NewPermissionSet()}
		assert.True(t, s.HasPermission(ModuleDashboard))
	})

	t.Run("regular user needs explicit grant", func(t *testing.T) {
		s := &Session{Role: RoleUser, Permissions: NewPermissionSet(ModuleDeposits)}
		assert.True(t, s.HasPermission(ModuleDeposits))
		assert.False(t, s.HasPermission(ModuleLoans))
		assert.False(t, s.HasPermission(ModuleUsers))
	})

	t.Run("all sentinel grants every module", func(t *testing.T) {
		s := &Session{Role: RoleUser, Permissions: NewPermissionSet(PermissionAll)}
		assert.True(t, s.HasPermission(ModuleUsers))
		assert.True(t, s.HasPermission(ModuleReports))
	})

	t.Run("nil session fails closed", func(t *testing.T) {
		var s *Session
		assert.False(t, s.HasPermission(ModuleDashboard))
	})
}
