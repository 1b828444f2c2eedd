package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/certificate"
)

type CertificateHandler struct {
	svc *certificate.Service
}

func NewCertificateHandler(svc *certificate.Service) *CertificateHandler {
	return &CertificateHandler{svc: svc}
}

// MultiUpload accepts one or more files and runs each through the upload
// pipeline. Per-file outcomes (success, duplicate, requires_manual_input,
// error) are reported independently; one bad file never fails the batch.
func (h *CertificateHandler) MultiUpload(w http.ResponseWriter, r *http.Request) {
	shipID, err := uuid.Parse(r.URL.Query().Get("ship_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid ship_id query parameter required"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	var headers []*multipart.FileHeader
	for _, fhs := range r.MultipartForm.File {
		headers = append(headers, fhs...)
	}
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one file required"})
		return
	}

	results := make([]interface{}, 0, len(headers))
	for _, fh := range headers {
		data, err := readMultipartFile(fh)
		if err != nil {
			results = append(results, map[string]string{
				"filename": fh.Filename, "status": "error", "error": "unreadable file",
			})
			continue
		}

		fileType := fh.Header.Get("Content-Type")
		if fileType == "" {
			fileType = filepath.Ext(fh.Filename)
		}

		outcome, err := h.svc.ProcessUpload(r.Context(), shipID, fh.Filename, fileType, data)
		if err != nil {
			results = append(results, map[string]string{
				"filename": fh.Filename, "status": "error", "error": err.Error(),
			})
			continue
		}
		results = append(results, outcome)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Resolve applies a duplicate-resolution directive from the client.
func (h *CertificateHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req certificate.ResolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Resolve(r.Context(), req)
	if err != nil {
		writeJSON(w, serviceErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BackfillShipInfo runs the offline ship-association repair pass.
func (h *CertificateHandler) BackfillShipInfo(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	report, err := h.svc.Backfill(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *CertificateHandler) List(w http.ResponseWriter, r *http.Request) {
	shipID, err := uuid.Parse(r.URL.Query().Get("ship_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid ship_id query parameter required"})
		return
	}

	docs, err := h.svc.ListByShip(r.Context(), shipID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
}

func (h *CertificateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if doc == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *CertificateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	if err := h.svc.DeleteDocument(r.Context(), id); err != nil {
		writeJSON(w, serviceErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, certificate.ErrInvalidResolution):
		return http.StatusBadRequest
	case errors.Is(err, certificate.ErrTargetNotFound):
		return http.StatusNotFound
	case errors.Is(err, certificate.ErrExtractionFailed), errors.Is(err, certificate.ErrStorageUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
