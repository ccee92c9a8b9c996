package handlers

import (
	"net/http"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"
)

const defaultHistoryLimit = 50

// @Summary Send targeted outreach
// @Description Posts the contacts of the chosen outlets to every configured webhook
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body models.OutreachRequest true "Outreach target"
// @Success 200 {object} models.OutreachResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/webhook/send_targeted_outreach [post]
func (h *HTTPHandler) SendTargetedOutreach(w http.ResponseWriter, r *http.Request) {
	var req models.OutreachRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	result, err := h.outreach.SendTargetedOutreach(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, result)
}

// @Summary Outreach history
// @Description Most recent webhook deliveries, newest first
// @Tags outreach
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} models.OutreachLog
// @Router /api/outreach/history [get]
func (h *HTTPHandler) OutreachHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := utils.ParsePositiveInt(r.URL.Query().Get("limit"), defaultHistoryLimit)
	if !ok {
		h.respondError(w, r, models.NewError(models.KindMalformedInput, "limit must be a positive integer"))
		return
	}
	history, err := h.outreach.History(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, history)
}

// @Summary Prepare a follow-up email
// @Description Drafts a follow-up email from a press release for the outlets of the chosen uploads
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body models.PrepareFollowUpRequest true "Draft source"
// @Success 201 {object} models.PrepareFollowUpResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/outreach/prepare-follow-up [post]
func (h *HTTPHandler) PrepareFollowUp(w http.ResponseWriter, r *http.Request) {
	var req models.PrepareFollowUpRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	resp, err := h.drafts.PrepareFollowUp(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, resp)
}
