package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"employees/internal/auth"
	"employees/internal/employee"
)

var (
	admin = &auth.Principal{ID: "a1", Role: employee.RoleAdmin, Name: "Admin"}
	self  = &auth.Principal{ID: "e1", Role: employee.RoleEmployee, Name: "Self"}
)

func TestCanList(t *testing.T) {
	d := CanList(nil)
	require.False(t, d.Allowed)
	require.Equal(t, ReasonUnauthenticated, d.Reason)

	d = CanList(admin)
	require.True(t, d.Allowed)
	require.Empty(t, d.ScopeID)

	d = CanList(self)
	require.True(t, d.Allowed)
	require.Equal(t, "e1", d.ScopeID)
}

func TestCanReadOne(t *testing.T) {
	require.False(t, CanReadOne(nil, "e1").Allowed)
	require.True(t, CanReadOne(admin, "e1").Allowed)
	require.True(t, CanReadOne(self, "e1").Allowed)

	d := CanReadOne(self, "e2")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonNotSelf, d.Reason)
}

func TestCanCreateAndDeleteAreAdminOnly(t *testing.T) {
	for _, check := range []func(*auth.Principal) Decision{CanCreate, CanDelete} {
		require.True(t, check(admin).Allowed)

		d := check(self)
		require.False(t, d.Allowed)
		require.Equal(t, ReasonWrongRole, d.Reason)

		d = check(nil)
		require.False(t, d.Allowed)
		require.Equal(t, ReasonUnauthenticated, d.Reason)
	}
}

func TestCanUpdate(t *testing.T) {
	d := CanUpdate(admin, "e2")
	require.True(t, d.Allowed)
	require.Nil(t, d.Fields, "admin updates are unrestricted")

	d = CanUpdate(self, "e1")
	require.True(t, d.Allowed)
	require.Equal(t, map[string]bool{
		"name": true, "avatar": true, "subjects": true, "class": true,
	}, d.Fields)

	d = CanUpdate(self, "e2")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonNotSelf, d.Reason)

	d = CanUpdate(nil, "e1")
	require.False(t, d.Allowed)
	require.Equal(t, ReasonUnauthenticated, d.Reason)
}
