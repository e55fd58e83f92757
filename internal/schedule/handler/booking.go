package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"camplan/internal/schedule/service"
	httputil "camplan/pkg/http"
	"camplan/pkg/logger"
	"camplan/pkg/middleware"
	"camplan/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	var req service.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.CreateGroup(r.Context(), familyID, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreatedWithWarnings(w, result, result.Warnings)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	booking, err := h.service.GetByID(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	bookings, total, err := h.service.List(r.Context(), familyID, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, bookings, total, limit, offset)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var update model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	booking, err := h.service.UpdateDetails(r.Context(), familyID, id, &update)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

type transitionRequest struct {
	State string `json:"state"`
}

// Transition moves the whole booking group of the named booking to a new
// state.
func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result, err := h.service.TransitionGroup(r.Context(), familyID, id, req.State)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessWithWarnings(w, result, result.Warnings)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	result, err := h.service.DeleteGroup(r.Context(), familyID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccessWithWarnings(w, result, result.Warnings)
}

func (h *BookingHandler) Repair(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	result, err := h.service.RepairGroups(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *BookingHandler) Grid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	grid, err := h.service.Grid(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, grid)
}

// CalendarFeed serves the family's booked weeks as an iCalendar document
// suitable for calendar app subscriptions.
func (h *BookingHandler) CalendarFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	familyID := middleware.FamilyID(r.Context())

	feed, err := h.service.CalendarFeed(r.Context(), familyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="camplan.ics"`)
	if _, err := w.Write([]byte(feed)); err != nil {
		h.log.Error("failed to write calendar feed", "family_id", familyID, "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/:id", h.Update)
	router.PUT("/api/v1/bookings/:id/state", h.Transition)
	router.DELETE("/api/v1/bookings/:id", h.Delete)
	router.POST("/api/v1/bookings/repair", h.Repair)
	router.GET("/api/v1/schedule", h.Grid)
	router.GET("/api/v1/schedule/calendar.ics", h.CalendarFeed)
}
