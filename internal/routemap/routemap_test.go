package routemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-admin/internal/routemap"
)

func TestEntityFor(t *testing.T) {
	assert.Equal(t, "employee", routemap.EntityFor("employees"))
	assert.Equal(t, "vacation_request", routemap.EntityFor("vacation-requests"))
	assert.Equal(t, "user", routemap.EntityFor("users"))
	assert.Equal(t, "company", routemap.EntityFor("companies"))

	// unmapped segments pass through unchanged
	assert.Equal(t, "unknown", routemap.EntityFor("unknown"))
}
