package adaptor

import (
	"errors"
	"net/http"

	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type AstronomyShowHandler struct {
	service        usecase.AstronomyShowService
	maxUploadBytes int64
	log            *zap.Logger
}

func NewAstronomyShowHandler(service usecase.AstronomyShowService, maxUploadMB int64, log *zap.Logger) *AstronomyShowHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 5
	}
	return &AstronomyShowHandler{
		service:        service,
		maxUploadBytes: maxUploadMB << 20,
		log:            log.With(zap.String("handler", "astronomy_show")),
	}
}

// GetAstronomyShows handles GET /api/planetarium/astronomy_show?title=&show-themes=
func (h *AstronomyShowHandler) GetAstronomyShows(w http.ResponseWriter, r *http.Request) {
	filter, errs := request.ParseAstronomyShowFilter(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid filter", errs)
		return
	}

	shows, err := h.service.GetAstronomyShows(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get astronomy shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

func (h *AstronomyShowHandler) GetAstronomyShowByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	show, err := h.service.GetAstronomyShowByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get astronomy show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

func (h *AstronomyShowHandler) CreateAstronomyShow(w http.ResponseWriter, r *http.Request) {
	var req request.AstronomyShowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	show, err := h.service.CreateAstronomyShow(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create astronomy show")
		return
	}

	utils.ResponseCreated(w, "success", show)
}

func (h *AstronomyShowHandler) UpdateAstronomyShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.AstronomyShowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	show, err := h.service.UpdateAstronomyShow(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update astronomy show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

func (h *AstronomyShowHandler) PatchAstronomyShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.AstronomyShowUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	show, err := h.service.PatchAstronomyShow(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "patch astronomy show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

func (h *AstronomyShowHandler) DeleteAstronomyShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAstronomyShow(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete astronomy show")
		return
	}

	utils.ResponseNoContent(w)
}

// UploadImage handles POST /api/planetarium/astronomy_show/{id}/upload-image (multipart, field "image")
func (h *AstronomyShowHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "Uploaded file is too large")
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", map[string]string{"image": "No file was submitted."})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"image": "No file was submitted."})
		return
	}
	defer file.Close()

	result, err := h.service.UploadImage(r.Context(), id, file)
	if err != nil {
		handleServiceError(w, h.log, err, "upload astronomy show image")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
