package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowSessionHandler struct {
	service    usecase.ShowSessionService
	pagination utils.PaginationConfig
	log        *zap.Logger
}

func NewShowSessionHandler(service usecase.ShowSessionService, pagination utils.PaginationConfig, log *zap.Logger) *ShowSessionHandler {
	return &ShowSessionHandler{
		service:    service,
		pagination: pagination,
		log:        log.With(zap.String("handler", "show_session")),
	}
}

// GetShowSessions handles GET /api/planetarium/show_sessions?date=&astronomy-show=&planetarium-dome=&page=&page_size=
func (h *ShowSessionHandler) GetShowSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, errs := request.ParseShowSessionFilter(query)
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid filter", errs)
		return
	}

	page, errs := request.ParsePagination(query, h.pagination)
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid page", errs)
		return
	}

	sessions, err := h.service.GetShowSessions(r.Context(), filter, &page)
	if err != nil {
		handleServiceError(w, h.log, err, "get show sessions")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

func (h *ShowSessionHandler) GetShowSessionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	session, err := h.service.GetShowSessionByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get show session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

func (h *ShowSessionHandler) CreateShowSession(w http.ResponseWriter, r *http.Request) {
	var req request.ShowSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.CreateShowSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create show session")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

func (h *ShowSessionHandler) UpdateShowSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.ShowSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.UpdateShowSession(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update show session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

func (h *ShowSessionHandler) PatchShowSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.ShowSessionUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.PatchShowSession(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "patch show session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

func (h *ShowSessionHandler) DeleteShowSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteShowSession(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete show session")
		return
	}

	utils.ResponseNoContent(w)
}
