package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowThemeHandler struct {
	service usecase.ShowThemeService
	log     *zap.Logger
}

func NewShowThemeHandler(service usecase.ShowThemeService, log *zap.Logger) *ShowThemeHandler {
	return &ShowThemeHandler{
		service: service,
		log:     log.With(zap.String("handler", "show_theme")),
	}
}

// GetShowThemes handles GET /api/planetarium/show_themes
func (h *ShowThemeHandler) GetShowThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.service.GetShowThemes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get show themes")
		return
	}

	utils.ResponseSuccess(w, "success", themes)
}

// GetShowThemeByID handles GET /api/planetarium/show_themes/{id}
func (h *ShowThemeHandler) GetShowThemeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	theme, err := h.service.GetShowThemeByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get show theme")
		return
	}

	utils.ResponseSuccess(w, "success", theme)
}

// CreateShowTheme handles POST /api/planetarium/show_themes (staff)
func (h *ShowThemeHandler) CreateShowTheme(w http.ResponseWriter, r *http.Request) {
	var req request.ShowThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theme, err := h.service.CreateShowTheme(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create show theme")
		return
	}

	utils.ResponseCreated(w, "success", theme)
}

// UpdateShowTheme handles PUT /api/planetarium/show_themes/{id} (staff)
func (h *ShowThemeHandler) UpdateShowTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.ShowThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theme, err := h.service.UpdateShowTheme(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update show theme")
		return
	}

	utils.ResponseSuccess(w, "success", theme)
}

// PatchShowTheme handles PATCH /api/planetarium/show_themes/{id} (staff)
func (h *ShowThemeHandler) PatchShowTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.ShowThemeUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theme, err := h.service.PatchShowTheme(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "patch show theme")
		return
	}

	utils.ResponseSuccess(w, "success", theme)
}

// DeleteShowTheme handles DELETE /api/planetarium/show_themes/{id} (staff)
func (h *ShowThemeHandler) DeleteShowTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteShowTheme(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete show theme")
		return
	}

	utils.ResponseNoContent(w)
}
