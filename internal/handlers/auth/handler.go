package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staybook/infras/otel"
	"staybook/internal/domains/auth/model/dto"
	"staybook/internal/domains/auth/service"
	"staybook/shared/constant"
	"staybook/shared/failure"
	"staybook/shared/validator"
	"staybook/transport/http/response"
)

// Handler serves the account endpoints every visitor reaches before holding a
// token: guest sign-up, login and token refresh. Password change needs one.
type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// Register opens a guest account. Hosting is granted later through the user
// endpoints, never at sign-up.
// @Summary Sign up as a guest
// @Description Creates an active GUEST account for the email. The email is stored lower-cased and must not be taken.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Guest sign-up"
// @Success 201 {object} response.Message "Guest account created"
// @Failure 400 {object} response.Error "Invalid email or password shorter than 8 characters"
// @Failure 409 {object} response.Error "Email already registered"
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "rejected guest sign-up body")

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		fail(w, scope, err, "guest sign-up failed")

		return
	}

	scope.AddEvent("guest account created")

	response.WithMessage(w, http.StatusCreated, "Guest account created")
}

// Login trades credentials for a token pair. The role in the body is the one
// the tokens were minted with, so clients can pick the guest or host views.
// @Summary Log in
// @Description Verifies email and password of an active account and returns an access/refresh pair together with the account role (GUEST, HOST or ADMIN).
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Token pair and role"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error "Unknown email or wrong password"
// @Failure 403 {object} response.Error "Account deactivated"
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "rejected login body")

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		fail(w, scope, err, "login failed")

		return
	}

	scope.SetAttribute("auth.role", res.Role)
	scope.AddEvent("token pair issued")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken rotates the pair. The account is read again, so a guest who
// became a host gets HOST tokens here without logging in again.
// @Summary Refresh the token pair
// @Description Exchanges a valid refresh token for a new pair carrying the account's current role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse "New token pair and current role"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error "Refresh token invalid, or account gone or deactivated"
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "rejected refresh body")

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		fail(w, scope, err, "token refresh failed")

		return
	}

	scope.SetAttribute("auth.role", res.Role)
	scope.AddEvent("token pair rotated")

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword replaces the caller's password after checking the current one.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Message "Password changed"
// @Failure 400 {object} response.Error "Current password is incorrect"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "rejected password change body")

		return
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.ChangePassword(ctx, req, userID); err != nil {
		fail(w, scope, err, "password change failed")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed")
}

// fail writes err as the response. Server faults are logged by
// response.WithError; bad credentials and bodies only rate a warning.
func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if code := failure.GetCode(err); code < http.StatusInternalServerError {
		log.Warn().Err(err).Int("status", code).Msg(msg)
	}

	response.WithError(w, err)
}
