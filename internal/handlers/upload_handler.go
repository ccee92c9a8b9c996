package handlers

import (
	"fmt"
	"net/http"
	"sway-pr/internal/models"
)

// @Summary List upload batches
// @Tags uploads
// @Produce json
// @Success 200 {array} models.Upload
// @Router /api/uploads [get]
func (h *HTTPHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.uploads.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, uploads)
}

// @Summary Upload batch detail
// @Description Returns the batch name and every contact imported with it
// @Tags uploads
// @Produce json
// @Param id path int true "Upload ID"
// @Success 200 {object} models.UploadDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /api/upload/{id} [get]
func (h *HTTPHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	detail, err := h.uploads.Detail(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, detail)
}

// @Summary Rename an upload batch
// @Tags uploads
// @Accept json
// @Produce json
// @Param id path int true "Upload ID"
// @Param request body models.RenameUploadRequest true "New name"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/upload/{id} [put]
func (h *HTTPHandler) RenameUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req models.RenameUploadRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.uploads.Rename(r.Context(), id, req.Name); err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Upload renamed"})
}

// @Summary Delete an upload batch
// @Description Deletes the batch and every contact imported with it
// @Tags uploads
// @Produce json
// @Param id path int true "Upload ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/upload/{id} [delete]
func (h *HTTPHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	removed, err := h.uploads.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Upload deleted along with %d records", removed),
	})
}

// @Summary Export an upload batch
// @Description Downloads the batch's contacts as an XLSX workbook
// @Tags uploads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Upload ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Router /api/upload/{id}/export [get]
func (h *HTTPHandler) ExportUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	fileName, buf, err := h.uploads.Export(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
