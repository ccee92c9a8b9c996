package handlers

import (
	"net/http"
	"strings"
	"sway-pr/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// @Summary List coverage reports
// @Tags coverage
// @Produce json
// @Success 200 {array} models.CoverageReport
// @Router /api/coverage-reports [get]
// @Router /api/published-reports [get]
func (h *HTTPHandler) ListCoverageReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.coverage.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, reports)
}

// @Summary Record published coverage
// @Tags coverage
// @Accept json
// @Produce json
// @Param request body models.CoverageReportRequest true "Coverage report"
// @Success 201 {object} models.IDResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/coverage-reports [post]
// @Router /api/published-reports [post]
func (h *HTTPHandler) CreateCoverageReport(w http.ResponseWriter, r *http.Request) {
	var req models.CoverageReportRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	report := coverageFromRequest(req)
	if err := h.coverage.Save(r.Context(), report); err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, models.IDResponse{ID: report.ID, Message: "Coverage report created"})
}

// @Summary Get a coverage report
// @Tags coverage
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} models.CoverageReport
// @Failure 404 {object} models.ErrorResponse
// @Router /api/coverage-reports/{id} [get]
// @Router /api/published-reports/{id} [get]
func (h *HTTPHandler) GetCoverageReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.loadCoverageReport(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, report)
}

// @Summary Update a coverage report
// @Tags coverage
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body models.CoverageReportRequest true "Coverage report"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/coverage-reports/{id} [put]
// @Router /api/published-reports/{id} [put]
func (h *HTTPHandler) UpdateCoverageReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req models.CoverageReportRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	report := coverageFromRequest(req)
	report.ID = id
	found, err := h.coverage.Update(r.Context(), report)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, r, models.NewError(models.KindNotFound, "coverage report %d not found", id))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Coverage report updated"})
}

// @Summary Delete a coverage report
// @Tags coverage
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/coverage-reports/{id} [delete]
// @Router /api/published-reports/{id} [delete]
func (h *HTTPHandler) DeleteCoverageReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	found, err := h.coverage.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !found {
		h.respondError(w, r, models.NewError(models.KindNotFound, "coverage report %d not found", id))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Coverage report deleted"})
}

// @Summary Coverage QR code
// @Description PNG QR code pointing at the published article
// @Tags coverage
// @Produce png
// @Param id path int true "Report ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Router /api/coverage-reports/{id}/qrcode [get]
func (h *HTTPHandler) CoverageQRCode(w http.ResponseWriter, r *http.Request) {
	report, err := h.loadCoverageReport(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	png, err := qrcode.Encode(report.Link, qrcode.Medium, qrCodeSize)
	if err != nil {
		h.respondError(w, r, models.WrapError(models.KindMalformedInput, err, "the link cannot be encoded as a QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *HTTPHandler) loadCoverageReport(r *http.Request) (*models.CoverageReport, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	report, err := h.coverage.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, models.NewError(models.KindNotFound, "coverage report %d not found", id)
	}
	return report, nil
}

func coverageFromRequest(req models.CoverageReportRequest) *models.CoverageReport {
	return &models.CoverageReport{
		Link:          strings.TrimSpace(req.Link),
		Article:       strings.TrimSpace(req.Article),
		DateOfPublish: req.DateOfPublish,
	}
}
