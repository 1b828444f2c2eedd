package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/fleet"
)

type CrewHandler struct {
	svc *fleet.Service
}

func NewCrewHandler(svc *fleet.Service) *CrewHandler {
	return &CrewHandler{svc: svc}
}

func (h *CrewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req fleet.CreateCrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FullName == "" || req.ShipID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "full_name and ship_id required"})
		return
	}

	member, err := h.svc.CreateCrewMember(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *CrewHandler) List(w http.ResponseWriter, r *http.Request) {
	shipID, err := uuid.Parse(r.URL.Query().Get("ship_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid ship_id query parameter required"})
		return
	}

	crew, err := h.svc.ListCrew(r.Context(), shipID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"crew": crew, "count": len(crew)})
}

func (h *CrewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid crew member ID"})
		return
	}

	member, err := h.svc.GetCrewMember(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "crew member not found"})
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *CrewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid crew member ID"})
		return
	}

	if err := h.svc.DeleteCrewMember(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
