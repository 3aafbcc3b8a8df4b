package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	auth usecase.AuthService
	user usecase.UserService
	log  *zap.Logger
}

func NewUserHandler(auth usecase.AuthService, user usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		auth: auth,
		user: user,
		log:  log.With(zap.String("handler", "user")),
	}
}

// Register handles POST /api/user/register (public)
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "success", user)
}

// Token handles POST /api/user/token (public)
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := h.auth.Token(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "obtain token")
		return
	}

	utils.ResponseSuccess(w, "success", tokens)
}

// RefreshToken handles POST /api/user/token/refresh (public)
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.auth.Refresh(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "refresh token")
		return
	}

	utils.ResponseSuccess(w, "success", token)
}

// Me handles GET /api/user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
		return
	}

	user, err := h.user.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}
