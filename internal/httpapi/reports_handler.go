package httpapi

import (
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/service"
)

type ReportsHandler struct {
	reports *service.ReportService
}

func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

func (h *ReportsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Generate(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to generate report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}
