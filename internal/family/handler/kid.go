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

type KidHandler struct {
	service service.KidService
	log     *logger.Logger
}

func NewKidHandler(service service.KidService, log *logger.Logger) *KidHandler {
	return &KidHandler{
		service: service,
		log:     log,
	}
}

func (h *KidHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	var kid model.Kid
	if err := json.NewDecoder(r.Body).Decode(&kid); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), familyID, &kid); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, kid)
}

func (h *KidHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	kid, err := h.service.GetByID(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, kid)
}

func (h *KidHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	kids, err := h.service.GetAll(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, kids)
}

func (h *KidHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var update model.KidUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	kid, err := h.service.Update(r.Context(), familyID, id, &update)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, kid)
}

func (h *KidHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *KidHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/kids", h.Create)
	router.GET("/api/v1/kids", h.GetAll)
	router.GET("/api/v1/kids/:id", h.GetByID)
	router.PATCH("/api/v1/kids/:id", h.Update)
	router.DELETE("/api/v1/kids/:id", h.Delete)
}
