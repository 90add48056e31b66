package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"staybook/config"
	"staybook/infras/jwt"
	jwtMocks "staybook/infras/jwt/mocks"
	otelMocks "staybook/infras/otel/mocks"
	"staybook/permissions"
	"staybook/shared/cache"
	cacheMocks "staybook/shared/cache/mocks"
	"staybook/shared/constant"
	"staybook/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testPermissions() *permissions.PermissionData {
	return &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/listings", Method: http.MethodGet, Skip: true},
			{Path: "/v1/listings", Method: http.MethodPost, Permissions: []string{constant.RoleHost}},
		},
	}
}

func newAuthRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	mw := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), testPermissions(), cfg)

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-User", user)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	}

	router.Route("/v1/listings", func(r chi.Router) {
		r.Get("/", whoami)
		r.Post("/", whoami)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	hostClaims := &jwt.Claims{UserID: "host-1", Role: "ROLE_HOST"}
	guestClaims := &jwt.Claims{UserID: "guest-1", Roles: []string{"guest"}}

	tests := []struct {
		name       string
		method     string
		header     map[string]string
		mock       func(m *jwtMocks.MockJWT)
		wantStatus int
		wantUser   string
		wantRole   string
	}{
		{
			name:       "public route without token",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:   "public route identifies a caller with a token",
			method: http.MethodGet,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer host-token"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("host-token", jwt.AccessToken).Return(hostClaims, nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "host-1",
			wantRole:   constant.RoleHost,
		},
		{
			name:   "public route ignores a bad token",
			method: http.MethodGet,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer broken"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("broken", jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "protected route without token",
			method:     http.MethodPost,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "protected route with expired token",
			method: http.MethodPost,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "host role allowed",
			method: http.MethodPost,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer host-token"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("host-token", jwt.AccessToken).Return(hostClaims, nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "host-1",
			wantRole:   constant.RoleHost,
		},
		{
			name:   "guest role forbidden",
			method: http.MethodPost,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer guest-token"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("guest-token", jwt.AccessToken).Return(guestClaims, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "claims without role rejected",
			method: http.MethodPost,
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer anon"},
			mock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("anon", jwt.AccessToken).Return(&jwt.Claims{UserID: "u-1"}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid api key bypasses auth",
			method:     http.MethodPost,
			header:     map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key forbidden",
			method:     http.MethodPost,
			header:     map[string]string{constant.RequestHeaderAPIKey: "nope"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.mock != nil {
				tt.mock(jwtService)
			}

			request := httptest.NewRequest(tt.method, "/v1/listings", nil)
			for key, value := range tt.header {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			newAuthRouter(t, jwtService).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUser, recorder.Header().Get("X-User"))
				assert.Equal(t, tt.wantRole, recorder.Header().Get("X-Role"))
			}
		})
	}
}

func newLimitedHandler(t *testing.T, redisCache cache.RedisCache, maxRequests int) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)

	return app.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimit(t *testing.T) {
	t.Run("first request opens a window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(1), nil)

		recorder := httptest.NewRecorder()
		newLimitedHandler(t, redisCache, 5).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "5", recorder.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "4", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("rejects once the window is used up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(6), nil)

		recorder := httptest.NewRecorder()
		newLimitedHandler(t, redisCache, 5).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	})

	t.Run("falls back to the local limiter when redis is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), errors.New("connection refused")).Times(2)

		handler := newLimitedHandler(t, redisCache, 1)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})
}
