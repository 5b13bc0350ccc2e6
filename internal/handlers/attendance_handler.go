package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/models"
	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/service"
)

type AttendanceHandler struct {
	attendance *service.AttendanceService
	logger     *zap.Logger
}

func NewAttendanceHandler(attendance *service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, logger: logger}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VolunteerID string                  `json:"volunteer_id"`
		ActivityID  string                  `json:"activity_id"`
		Status      models.AttendanceStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rec, err := h.attendance.Mark(r.Context(), req.VolunteerID, req.ActivityID, req.Status)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *AttendanceHandler) ByActivity(w http.ResponseWriter, r *http.Request) {
	rows, err := h.attendance.ByActivity(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *AttendanceHandler) ByVolunteer(w http.ResponseWriter, r *http.Request) {
	rows, err := h.attendance.ByVolunteer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
