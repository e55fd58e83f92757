package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"camplan/internal/family/service"
	httputil "camplan/pkg/http"
	"camplan/pkg/logger"
	"camplan/pkg/middleware"
	"camplan/pkg/model"
)

type TripHandler struct {
	service service.TripService
	log     *logger.Logger
}

func NewTripHandler(service service.TripService, log *logger.Logger) *TripHandler {
	return &TripHandler{
		service: service,
		log:     log,
	}
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	var trip model.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), familyID, &trip); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, trip)
}

func (h *TripHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	trip, err := h.service.GetByID(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, trip)
}

func (h *TripHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	trips, err := h.service.GetAll(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, trips)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var update model.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	trip, err := h.service.Update(r.Context(), familyID, id, &update)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, trip)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	if err := h.service.Delete(r.Context(), familyID, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TripHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/trips", h.Create)
	router.GET("/api/v1/trips", h.GetAll)
	router.GET("/api/v1/trips/:id", h.GetByID)
	router.PATCH("/api/v1/trips/:id", h.Update)
	router.DELETE("/api/v1/trips/:id", h.Delete)
}
