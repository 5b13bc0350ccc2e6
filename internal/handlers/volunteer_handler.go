package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/service"
)

type VolunteerHandler struct {
	volunteers *service.VolunteerService
	logger     *zap.Logger
}

func NewVolunteerHandler(volunteers *service.VolunteerService, logger *zap.Logger) *VolunteerHandler {
	return &VolunteerHandler{volunteers: volunteers, logger: logger}
}

func (h *VolunteerHandler) List(w http.ResponseWriter, r *http.Request) {
	volunteers, err := h.volunteers.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, volunteers)
}

func (h *VolunteerHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.volunteers.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *VolunteerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateVolunteerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	v, err := h.volunteers.Create(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

func (h *VolunteerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateVolunteerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	v, err := h.volunteers.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *VolunteerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.volunteers.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Volunteer deleted successfully"))
}
