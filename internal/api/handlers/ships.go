package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/fleet"
)

type ShipHandler struct {
	svc *fleet.Service
}

func NewShipHandler(svc *fleet.Service) *ShipHandler {
	return &ShipHandler{svc: svc}
}

func (h *ShipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req fleet.CreateShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.CompanyID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and company_id required"})
		return
	}

	ship, err := h.svc.CreateShip(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, ship)
}

func (h *ShipHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	var companyID *uuid.UUID
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid company_id"})
			return
		}
		companyID = &id
	}

	ships, err := h.svc.ListShips(r.Context(), companyID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ships": ships, "count": len(ships)})
}

func (h *ShipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ship ID"})
		return
	}

	ship, err := h.svc.GetShip(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if ship == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ship not found"})
		return
	}

	writeJSON(w, http.StatusOK, ship)
}

func (h *ShipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ship ID"})
		return
	}

	if err := h.svc.DeleteShip(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
