package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/queue"
)

type AdminHandler struct {
	auditSvc    *audit.Service
	queueClient *queue.Client
}

func NewAdminHandler(auditSvc *audit.Service, qc *queue.Client) *AdminHandler {
	return &AdminHandler{auditSvc: auditSvc, queueClient: qc}
}

// EnqueueBackfill schedules a backfill pass on the worker instead of running
// it inside the request, for large repair batches.
func (h *AdminHandler) EnqueueBackfill(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if err := h.queueClient.EnqueueBackfillShipInfo(queue.BackfillShipInfoPayload{Limit: limit}); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "enqueued"})
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	q := audit.Query{
		Action: r.URL.Query().Get("action"),
	}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			q.StartDate = &t
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			q.EndDate = &t
		}
	}

	logs, err := h.auditSvc.List(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs, "count": len(logs)})
}
