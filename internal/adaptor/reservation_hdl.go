package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReservationHandler struct {
	service    usecase.ReservationService
	pagination utils.PaginationConfig
	log        *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, pagination utils.PaginationConfig, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:    service,
		pagination: pagination,
		log:        log.With(zap.String("handler", "reservation")),
	}
}

// GetReservations handles GET /api/planetarium/reservations (own only)
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
		return
	}

	page, errs := request.ParsePagination(r.URL.Query(), h.pagination)
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid page", errs)
		return
	}

	reservations, err := h.service.GetReservations(r.Context(), userID, &page)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetReservationByID(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CreateReservation handles POST /api/planetarium/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
		return
	}

	var req request.ReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReservation(r.Context(), userID, id); err != nil {
		handleServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseNoContent(w)
}
