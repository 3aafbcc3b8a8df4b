package adaptor

import (
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type PlanetariumDomeHandler struct {
	service usecase.PlanetariumDomeService
	log     *zap.Logger
}

func NewPlanetariumDomeHandler(service usecase.PlanetariumDomeService, log *zap.Logger) *PlanetariumDomeHandler {
	return &PlanetariumDomeHandler{
		service: service,
		log:     log.With(zap.String("handler", "planetarium_dome")),
	}
}

// GetPlanetariumDomes handles GET /api/planetarium/planetarium_domes
func (h *PlanetariumDomeHandler) GetPlanetariumDomes(w http.ResponseWriter, r *http.Request) {
	domes, err := h.service.GetPlanetariumDomes(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get planetarium domes")
		return
	}

	utils.ResponseSuccess(w, "success", domes)
}

func (h *PlanetariumDomeHandler) GetPlanetariumDomeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	dome, err := h.service.GetPlanetariumDomeByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get planetarium dome")
		return
	}

	utils.ResponseSuccess(w, "success", dome)
}

func (h *PlanetariumDomeHandler) CreatePlanetariumDome(w http.ResponseWriter, r *http.Request) {
	var req request.PlanetariumDomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dome, err := h.service.CreatePlanetariumDome(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create planetarium dome")
		return
	}

	utils.ResponseCreated(w, "success", dome)
}

func (h *PlanetariumDomeHandler) UpdatePlanetariumDome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.PlanetariumDomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dome, err := h.service.UpdatePlanetariumDome(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update planetarium dome")
		return
	}

	utils.ResponseSuccess(w, "success", dome)
}

func (h *PlanetariumDomeHandler) PatchPlanetariumDome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.PlanetariumDomeUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dome, err := h.service.PatchPlanetariumDome(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "patch planetarium dome")
		return
	}

	utils.ResponseSuccess(w, "success", dome)
}

func (h *PlanetariumDomeHandler) DeletePlanetariumDome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePlanetariumDome(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete planetarium dome")
		return
	}

	utils.ResponseNoContent(w)
}
