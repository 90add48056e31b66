package router_test

import (
	"net/http"
	"staybook/permissions"
	"staybook/transport/http/router"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routes(t *testing.T) map[string]bool {
	t.Helper()

	mux := chi.NewRouter()
	r := router.New(router.DomainHandlers{})
	r.SetupRoutes(mux)

	registered := map[string]bool{}

	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 && route[len(route)-1] == '/' {
			route = route[:len(route)-1]
		}

		registered[method+" "+route] = true

		return nil
	})
	require.NoError(t, err)

	return registered
}

func TestSetupRoutes(t *testing.T) {
	registered := routes(t)

	for _, route := range []string{
		"POST /v1/auth/login",
		"GET /v1/listings/search",
		"GET /v1/listings/{id}/comments",
		"GET /v1/listings/{id}/reservations",
		"GET /v1/listings/{id}/metrics",
		"POST /v1/reservations/{id}/comments",
		"POST /v1/comments/{id}/reply",
		"GET /v1/host/metrics",
		"DELETE /v1/favorites/{id}",
		"POST /v1/users/me/host",
	} {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestEveryRouteHasPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	declared := map[string]bool{}
	for _, endpoint := range data.Endpoints {
		declared[endpoint.Method+" "+endpoint.Path] = true
	}

	registered := routes(t)

	for route := range registered {
		assert.True(t, declared[route], "route %s has no permissions entry", route)
	}

	for route := range declared {
		assert.True(t, registered[route], "permissions entry %s has no route", route)
	}
}
