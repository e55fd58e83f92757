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

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	campID := ps.ByName("id")
	if campID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Camp ID parameter is required",
		})
		return
	}

	var session model.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), familyID, campID, &session); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, session)
}

// CreateBulk accepts a batch of sessions for one camp, the sink for
// imports scraped off camp sites.
func (h *SessionHandler) CreateBulk(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	campID := ps.ByName("id")
	if campID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Camp ID parameter is required",
		})
		return
	}

	var sessions []*model.Session
	if err := json.NewDecoder(r.Body).Decode(&sessions); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.CreateBulk(r.Context(), familyID, campID, sessions)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, result)
}

func (h *SessionHandler) GetByCamp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	campID := ps.ByName("id")
	if campID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Camp ID parameter is required",
		})
		return
	}

	sessions, err := h.service.GetByCamp(r.Context(), familyID, campID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sessions)
}

func (h *SessionHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	sessions, err := h.service.GetAll(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sessions)
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	session, err := h.service.GetByID(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, session)
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var update model.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	session, err := h.service.Update(r.Context(), familyID, id, &update)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, session)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/camps/:id/sessions", h.Create)
	router.POST("/api/v1/camps/:id/sessions/bulk", h.CreateBulk)
	router.GET("/api/v1/camps/:id/sessions", h.GetByCamp)
	router.GET("/api/v1/sessions", h.GetAll)
	router.GET("/api/v1/sessions/:id", h.GetByID)
	router.PATCH("/api/v1/sessions/:id", h.Update)
	router.DELETE("/api/v1/sessions/:id", h.Delete)
}
