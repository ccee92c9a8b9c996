package handlers

import (
	"net/http"
	"strings"
	"sway-pr/internal/models"
)

// @Summary List staff
// @Tags staff
// @Produce json
// @Success 200 {array} models.Staff
// @Router /api/staff [get]
func (h *HTTPHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staff.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, staff)
}

// @Summary Add a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Param request body models.StaffRequest true "Staff member"
// @Success 201 {object} models.Staff
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/staff [post]
func (h *HTTPHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	staff := &models.Staff{
		StaffName:  strings.TrimSpace(req.StaffName),
		StaffEmail: strings.ToLower(strings.TrimSpace(req.StaffEmail)),
	}
	if err := h.staff.Save(r.Context(), staff); err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, staff)
}

// @Summary Remove a staff member
// @Tags staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/staff/{id} [delete]
func (h *HTTPHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	found, err := h.staff.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, r, models.NewError(models.KindNotFound, "staff member %d not found", id))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Staff member removed"})
}
