package handlers

import (
	"net/http"
	"strings"
	"sway-pr/internal/models"
)

// @Summary List follow-up emails
// @Tags follow-ups
// @Produce json
// @Success 200 {array} models.FollowUpEmail
// @Router /api/follow-up-emails [get]
func (h *HTTPHandler) ListFollowUpEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.followUps.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, emails)
}

// @Summary Create a follow-up email
// @Tags follow-ups
// @Accept json
// @Produce json
// @Param request body models.FollowUpEmailRequest true "Follow-up email"
// @Success 201 {object} models.IDResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/follow-up-emails [post]
func (h *HTTPHandler) CreateFollowUpEmail(w http.ResponseWriter, r *http.Request) {
	var req models.FollowUpEmailRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	email := followUpFromRequest(req)
	if err := h.followUps.Save(r.Context(), email); err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, models.IDResponse{ID: email.ID, Message: "Follow-up email created"})
}

// @Summary Get a follow-up email
// @Tags follow-ups
// @Produce json
// @Param id path int true "Follow-up email ID"
// @Success 200 {object} models.FollowUpEmail
// @Failure 404 {object} models.ErrorResponse
// @Router /api/follow-up-email/{id} [get]
func (h *HTTPHandler) GetFollowUpEmail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	email, err := h.followUps.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if email == nil {
		h.respondError(w, r, models.NewError(models.KindNotFound, "follow-up email %d not found", id))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, email)
}

// @Summary Update a follow-up email
// @Tags follow-ups
// @Accept json
// @Produce json
// @Param id path int true "Follow-up email ID"
// @Param request body models.FollowUpEmailRequest true "Follow-up email"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/follow-up-email/{id} [put]
func (h *HTTPHandler) UpdateFollowUpEmail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req models.FollowUpEmailRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	email := followUpFromRequest(req)
	email.ID = id
	found, err := h.followUps.Update(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, r, models.NewError(models.KindNotFound, "follow-up email %d not found", id))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Follow-up email updated"})
}

// @Summary Delete a follow-up email
// @Tags follow-ups
// @Produce json
// @Param id path int true "Follow-up email ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/follow-up-email/{id} [delete]
func (h *HTTPHandler) DeleteFollowUpEmail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	found, err := h.followUps.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, r, models.NewError(models.KindNotFound, "follow-up email %d not found", id))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Follow-up email deleted"})
}

func followUpFromRequest(req models.FollowUpEmailRequest) *models.FollowUpEmail {
	return &models.FollowUpEmail{
		Name:       strings.TrimSpace(req.Name),
		Content:    req.Content,
		OutletName: strings.TrimSpace(req.OutletName),
		City:       strings.TrimSpace(req.City),
	}
}
