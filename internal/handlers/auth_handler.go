package handlers

import (
	"net/http"
	"sway-pr/internal/models"
	"time"
)

// @Summary Log in
// @Description Checks the credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	session, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	models.RespondWithJSON(w, http.StatusOK, user)
}

// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.config.Session.CookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /api/me [get]
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	models.RespondWithJSON(w, http.StatusOK, currentUser(r))
}
