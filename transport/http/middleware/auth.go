package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"staybook/config"
	"staybook/infras/jwt"
	"staybook/infras/otel"
	"staybook/permissions"
	"staybook/shared/constant"
	"staybook/shared/failure"
	"staybook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuth = SkipAuthKey("skip")

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole authenticates callers and checks their role against the route
// table in permissions.json. Routes are matched by chi pattern.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuth).(bool)

	return skip
}

// route resolves the permission entry for the pattern the request will hit.
func (m *authRoleImpl) route(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

// Auth requires a valid access token except on public routes, where a valid
// token still identifies the caller.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		pattern, permission := m.route(request)
		scope.SetAttributes(map[string]any{"http.route": pattern, "http.method": request.Method})

		claims, role, err := m.authenticate(request)

		if permission.Skip {
			if err == nil {
				request = request.WithContext(withClaims(request.Context(), claims, role))
			}

			next.ServeHTTP(writer, request)

			return
		}

		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request.WithContext(withClaims(request.Context(), claims, role)))
	})
}

// authenticate validates the bearer token and returns its claims and the
// role used for access checks.
func (m *authRoleImpl) authenticate(request *http.Request) (*jwt.Claims, string, error) {
	header := request.Header.Get(constant.RequestHeaderAuthorization)
	if header == "" {
		return nil, "", failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return nil, "", failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, "", failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return nil, "", failure.Unauthorized("Invalid token claims")
	default:
		return nil, "", failure.Unauthorized("Invalid token")
	}

	role := claims.PrimaryRole()
	if claims.UserID == "" || role == "" {
		log.Warn().Str("user_id", claims.UserID).Msg("token without user or role")

		return nil, "", failure.Unauthorized("Invalid token claims")
	}

	return claims, role, nil
}

func withClaims(ctx context.Context, claims *jwt.Claims, role string) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
}

// RBAC runs after Auth. Routes missing from the table are denied.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skipped(ctx) || (m.permission != nil && m.permission.Skip) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		pattern, permission := m.route(request)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Skip && !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"http.route":    pattern,
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers with the shared key through without a token.
// Requests without the header continue as regular clients.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), skipAuth, false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), skipAuth, true)))
	})
}
