package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"sway-pr/internal/models"
	"sway-pr/internal/services"
)

// parseUpload reads a multipart form capped at the configured upload size.
// A missing file yields nil without error.
func (h *HTTPHandler) parseUpload(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Import.MaxUploadSize)
	if err := r.ParseMultipartForm(h.config.Import.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, models.NewError(models.KindMalformedInput, "file too large, the limit is %d bytes", tooLarge.Limit)
		}
		return nil, nil, models.WrapError(models.KindMalformedInput, err, "could not read the uploaded form")
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, models.WrapError(models.KindMalformedInput, err, "could not read the uploaded file")
	}
	return file, header, nil
}

// @Summary Preview a CSV file
// @Description Returns the trimmed header names of the uploaded file without storing anything
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} models.PreviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/import/preview [post]
func (h *HTTPHandler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	file, _, err := h.parseUpload(w, r, "file")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if file == nil {
		h.respondError(w, r, models.NewError(models.KindMissingField, "file is required"))
		return
	}
	defer file.Close()

	headers, err := h.imports.Preview(file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.PreviewResponse{Headers: headers})
}

// @Summary Import a CSV file
// @Description Imports every data row of the file into the target table as a new upload batch
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param target_table formData string true "journalists or media_titles"
// @Param column_mapping formData string true "JSON object of file header to column name"
// @Param upload_name formData string true "Batch name"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/import/run [post]
func (h *HTTPHandler) RunImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := h.parseUpload(w, r, "file")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	in := services.ImportInput{
		TargetTable:   r.FormValue("target_table"),
		ColumnMapping: r.FormValue("column_mapping"),
		BatchName:     r.FormValue("upload_name"),
	}
	if file != nil {
		defer file.Close()
		in.File = &services.ImportFile{Name: header.Filename, Content: file}
	}

	result, err := h.imports.RunImport(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, result)
}
