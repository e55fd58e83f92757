package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"camplan/internal/schedule/service"
	httputil "camplan/pkg/http"
	"camplan/pkg/logger"
	"camplan/pkg/middleware"
)

type WeekHandler struct {
	service service.WeekService
	log     *logger.Logger
}

func NewWeekHandler(service service.WeekService, log *logger.Logger) *WeekHandler {
	return &WeekHandler{
		service: service,
		log:     log,
	}
}

func (h *WeekHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	weeks, err := h.service.List(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, weeks)
}

// Recalculate rebuilds the family's summer weeks. force=true deletes
// existing bookings first instead of refusing.
func (h *WeekHandler) Recalculate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	force := r.URL.Query().Get("force") == "true"

	result, err := h.service.Recalculate(r.Context(), familyID, force)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessWithWarnings(w, result, result.Warnings)
}

func (h *WeekHandler) Reblock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	result, err := h.service.Reblock(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *WeekHandler) Sessions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	sessions, err := h.service.SessionsForWeek(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, sessions)
}

func (h *WeekHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/weeks", h.List)
	router.POST("/api/v1/weeks/recalculate", h.Recalculate)
	router.POST("/api/v1/weeks/reblock", h.Reblock)
	router.GET("/api/v1/weeks/:id/sessions", h.Sessions)
}
