package handlers

import (
	"io"
	"net/http"
	"sway-pr/internal/models"
	"sway-pr/internal/services"
)

// Email templates and press releases share these handlers; the service
// picks the table.

// @Summary List documents
// @Tags documents
// @Produce json
// @Success 200 {array} models.Document
// @Router /api/email-templates [get]
// @Router /api/press-releases [get]
func (h *HTTPHandler) ListDocuments(svc *services.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.List(r.Context())
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		models.RespondWithJSON(w, http.StatusOK, docs)
	}
}

// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} models.ErrorResponse
// @Router /api/email-template/{id} [get]
// @Router /api/press-release/{id} [get]
func (h *HTTPHandler) GetDocument(svc *services.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		doc, err := svc.Get(r.Context(), id)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		models.RespondWithJSON(w, http.StatusOK, doc)
	}
}

// @Summary Document image
// @Tags documents
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Router /api/email-template/{id}/image [get]
// @Router /api/press-release/{id}/image [get]
func (h *HTTPHandler) DocumentImage(svc *services.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		doc, err := svc.Get(r.Context(), id)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		if len(doc.Image) == 0 {
			h.respondError(w, r, models.NewError(models.KindNotFound, "document %d has no image", id))
			return
		}
		w.Header().Set("Content-Type", http.DetectContentType(doc.Image))
		w.WriteHeader(http.StatusOK)
		w.Write(doc.Image)
	}
}

// @Summary Update a document
// @Description Replaces name and content; an image part replaces the stored image
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Document ID"
// @Param name formData string true "Name"
// @Param content formData string true "Plain text content"
// @Param html_content formData string false "HTML content, derived from content when empty"
// @Param image formData file false "Image"
// @Success 200 {object} models.Document
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/email-template/{id} [put]
// @Router /api/press-release/{id} [put]
func (h *HTTPHandler) UpdateDocument(svc *services.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		file, _, err := h.parseUpload(w, r, "image")
		if err != nil {
			h.respondError(w, r, err)
			return
		}

		var image []byte
		if file != nil {
			defer file.Close()
			if image, err = io.ReadAll(file); err != nil {
				h.respondError(w, r, models.WrapError(models.KindMalformedInput, err, "could not read the image"))
				return
			}
		}

		doc, err := svc.Update(r.Context(), id, r.FormValue("name"), r.FormValue("content"), r.FormValue("html_content"), image)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		models.RespondWithJSON(w, http.StatusOK, doc)
	}
}

// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/email-template/{id} [delete]
// @Router /api/press-release/{id} [delete]
func (h *HTTPHandler) DeleteDocument(svc *services.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			h.respondError(w, r, err)
			return
		}
		models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Deleted"})
	}
}

// @Summary Upload a document
// @Description Stores the text of a .docx, .pdf or .txt file as a new document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param name formData string false "Name, defaults to the file name"
// @Success 201 {object} models.IDResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/upload-template [post]
// @Router /api/upload-press-release [post]
func (h *HTTPHandler) UploadDocument(svc *services.DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := h.parseUpload(w, r, "file")
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		if file == nil {
			h.respondError(w, r, models.NewError(models.KindMissingField, "file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.respondError(w, r, models.WrapError(models.KindMalformedInput, err, "could not read the uploaded file"))
			return
		}

		doc, err := svc.Upload(r.Context(), r.FormValue("name"), header.Filename, data)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		models.RespondWithJSON(w, http.StatusCreated, models.IDResponse{ID: doc.ID, Message: "Uploaded " + doc.Name})
	}
}
