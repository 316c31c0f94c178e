package access_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-admin/internal/access"
	"hr-admin/internal/config"
)

func TestOperationForMethod(t *testing.T) {
	cases := []struct {
		method string
		op     access.Operation
		ok     bool
	}{
		{http.MethodGet, access.OperationRead, true},
		{http.MethodHead, access.OperationRead, true},
		{http.MethodPost, access.OperationCreate, true},
		{http.MethodPut, access.OperationUpdate, true},
		{http.MethodDelete, access.OperationDelete, true},
		{http.MethodPatch, "", false},
		{http.MethodOptions, "", false},
	}

	for _, tc := range cases {
		op, ok := access.OperationForMethod(tc.method)
		assert.Equal(t, tc.ok, ok, tc.method)
		assert.Equal(t, tc.op, op, tc.method)
	}
}

func TestEnforcerCanAccess(t *testing.T) {
	enforcer, err := access.NewEnforcer(config.App())
	require.NoError(t, err)

	check := func(roles []string, entity string, op access.Operation) bool {
		allowed, err := enforcer.CanAccess(access.Subject{UserID: "u1", Roles: roles}, entity, op)
		require.NoError(t, err)
		return allowed
	}

	t.Run("owner can do everything", func(t *testing.T) {
		assert.True(t, check([]string{"Owner"}, "employee", access.OperationDelete))
		assert.True(t, check([]string{"Owner"}, "vacation_request", access.OperationCreate))
		assert.True(t, check([]string{"Owner"}, "user", access.OperationUpdate))
	})

	t.Run("hr manager manages hr entities but only reads users", func(t *testing.T) {
		assert.True(t, check([]string{"HR Manager"}, "employee", access.OperationUpdate))
		assert.True(t, check([]string{"HR Manager"}, "vacation_request", access.OperationDelete))
		assert.True(t, check([]string{"HR Manager"}, "user", access.OperationRead))
		assert.False(t, check([]string{"HR Manager"}, "user", access.OperationDelete))
	})

	t.Run("employee reads and files vacation requests", func(t *testing.T) {
		assert.True(t, check([]string{"Employee"}, "employee", access.OperationRead))
		assert.True(t, check([]string{"Employee"}, "vacation_request", access.OperationCreate))
		assert.True(t, check([]string{"Employee"}, "vacation_request", access.OperationUpdate))
		assert.False(t, check([]string{"Employee"}, "vacation_request", access.OperationDelete))
		assert.False(t, check([]string{"Employee"}, "employee", access.OperationCreate))
	})

	t.Run("guest holds no grants", func(t *testing.T) {
		assert.False(t, check([]string{"Guest"}, "employee", access.OperationRead))
		assert.False(t, check([]string{"Guest"}, "vacation_request", access.OperationRead))
	})

	t.Run("any allowing role is enough", func(t *testing.T) {
		assert.True(t, check([]string{"Guest", "Admin"}, "employee", access.OperationCreate))
	})

	t.Run("no roles means denied", func(t *testing.T) {
		assert.False(t, check(nil, "employee", access.OperationRead))
	})
}
