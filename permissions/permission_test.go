package permissions_test

import (
	"staybook/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)

	seen := map[string]bool{}
	for _, endpoint := range data.Endpoints {
		key := endpoint.Method + " " + endpoint.Path
		assert.False(t, seen[key], "duplicate entry %s", key)
		seen[key] = true

		if !endpoint.Skip {
			assert.NotEmpty(t, endpoint.Permissions, "%s has no roles", key)
		}
	}
}

func TestFindPermissions(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/listings", Method: "GET", Skip: true},
			{Path: "/v1/listings", Method: "POST", Permissions: []string{"HOST"}},
			{Path: "/v1/listings/{id}/metrics", Method: "GET", Permissions: []string{"HOST"}},
		},
	}

	tests := []struct {
		name     string
		path     string
		method   string
		expected permissions.Permission
	}{
		{
			name:     "exact match",
			path:     "/v1/listings/{id}/metrics",
			method:   "GET",
			expected: data.Endpoints[2],
		},
		{
			name:     "trailing slash is ignored",
			path:     "/v1/listings/",
			method:   "POST",
			expected: data.Endpoints[1],
		},
		{
			name:     "method must match",
			path:     "/v1/listings/{id}/metrics",
			method:   "DELETE",
			expected: permissions.Permission{},
		},
		{
			name:     "unknown path",
			path:     "/v1/unknown",
			method:   "GET",
			expected: permissions.Permission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, data.FindPermissions(tt.path, tt.method))
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	hostOnly := permissions.Permission{Permissions: []string{"HOST"}}

	assert.True(t, hostOnly.Allows("HOST"))
	assert.False(t, hostOnly.Allows("GUEST"))
	assert.False(t, hostOnly.Allows(""))
	assert.False(t, permissions.Permission{}.Allows("ADMIN"))
}
