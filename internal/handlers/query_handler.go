package handlers

import (
	"net/http"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/gorilla/mux"
)

// @Summary List a table
// @Description Returns every row of journalists, media_titles or uploads
// @Tags contacts
// @Produce json
// @Param table path string true "journalists, media_titles or uploads"
// @Success 200 {array} object
// @Failure 400 {object} models.ErrorResponse
// @Router /api/table/{table} [get]
func (h *HTTPHandler) ListTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListAll(r.Context(), mux.Vars(r)["table"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, rows)
}

// @Summary Table schema
// @Description Returns the columns an import into the table can populate
// @Tags contacts
// @Produce json
// @Param table path string true "journalists or media_titles"
// @Success 200 {object} models.SchemaResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/table/{table}/schema [get]
func (h *HTTPHandler) TableSchema(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	columns, err := h.queries.SchemaOf(table)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.SchemaResponse{Table: table, Columns: columns})
}

// @Summary Distinct outlets
// @Tags contacts
// @Produce json
// @Param table path string true "journalists, media_titles or all"
// @Param upload_id query int false "Restrict to one upload batch"
// @Success 200 {array} string
// @Failure 400 {object} models.ErrorResponse
// @Router /api/outlets/{table} [get]
func (h *HTTPHandler) DistinctOutlets(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, mux.Vars(r)["table"], string(models.FieldOutletName))
}

// @Summary Distinct cities
// @Tags contacts
// @Produce json
// @Param upload_id query int false "Restrict to one upload batch"
// @Success 200 {array} string
// @Router /api/cities/all [get]
func (h *HTTPHandler) DistinctCities(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, models.TableAll, string(models.FieldCity))
}

func (h *HTTPHandler) distinct(w http.ResponseWriter, r *http.Request, table, field string) {
	uploadID, err := queryUploadID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	values, err := h.queries.DistinctValues(r.Context(), table, field, uploadID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, values)
}

// @Summary Fuzzy search
// @Description Ranks distinct outlet names or cities against q, best first
// @Tags contacts
// @Produce json
// @Param field path string true "outletName or City"
// @Param q query string false "Search text"
// @Param upload_id query int false "Restrict to one upload batch"
// @Success 200 {array} string
// @Failure 400 {object} models.ErrorResponse
// @Router /api/search/{field} [get]
func (h *HTTPHandler) SearchField(w http.ResponseWriter, r *http.Request) {
	uploadID, err := queryUploadID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	matches, err := h.queries.FuzzySearch(r.Context(), mux.Vars(r)["field"], r.URL.Query().Get("q"), uploadID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, matches)
}

// @Summary Paged media contacts
// @Description Contacts with a plausible email address from both tables, filtered by q
// @Tags contacts
// @Produce json
// @Param q query string false "Matches name, outlet or email"
// @Param page query int false "Page number, from 1"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.ContactPage
// @Failure 400 {object} models.ErrorResponse
// @Router /api/media-contacts [get]
func (h *HTTPHandler) MediaContacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, ok := utils.ParsePositiveInt(query.Get("page"), 1)
	if !ok {
		h.respondError(w, r, models.NewError(models.KindMalformedInput, "page must be a positive integer"))
		return
	}
	pageSize, ok := utils.ParsePositiveInt(query.Get("page_size"), h.config.Search.DefaultPageSize)
	if !ok {
		h.respondError(w, r, models.NewError(models.KindMalformedInput, "page_size must be a positive integer"))
		return
	}

	result, err := h.queries.PagedSearch(r.Context(), query.Get("q"), page, pageSize)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, result)
}
