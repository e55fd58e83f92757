package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"camplan/internal/camps/service"
	httputil "camplan/pkg/http"
	"camplan/pkg/logger"
	"camplan/pkg/middleware"
	"camplan/pkg/model"
)

type CampHandler struct {
	service service.CampService
	log     *logger.Logger
}

func NewCampHandler(service service.CampService, log *logger.Logger) *CampHandler {
	return &CampHandler{
		service: service,
		log:     log,
	}
}

func (h *CampHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	var camp model.Camp
	if err := json.NewDecoder(r.Body).Decode(&camp); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), familyID, &camp); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, camp)
}

func (h *CampHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	camp, err := h.service.GetByID(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, camp)
}

func (h *CampHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	camps, err := h.service.GetAll(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, camps)
}

func (h *CampHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var update model.CampUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	camp, err := h.service.Update(r.Context(), familyID, id, &update)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, camp)
}

func (h *CampHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *CampHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/camps", h.Create)
	router.GET("/api/v1/camps", h.GetAll)
	router.GET("/api/v1/camps/:id", h.GetByID)
	router.PATCH("/api/v1/camps/:id", h.Update)
	router.DELETE("/api/v1/camps/:id", h.Delete)
}
