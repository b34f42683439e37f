package compliancehandler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"opsboard/internal/domain/auth"
	"opsboard/internal/domain/compliance"
	"opsboard/internal/transport/http/api"
	"opsboard/internal/transport/http/middleware"
)

type Handler struct {
	Service   *compliance.Service
	ReportDir string
}

func NewHandler(service *compliance.Service, reportDir string) *Handler {
	return &Handler{Service: service, ReportDir: reportDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compliance", func(r chi.Router) {
		r.Get("/matrix", h.handleMatrix)
		r.Get("/checklist/{employeeID}", h.handleChecklist)
		r.Post("/report", h.handleReport)
	})
}

func (h *Handler) handleMatrix(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if !auth.CanViewMatrix(user.Role) {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager, hr or admin required", middleware.GetRequestID(r.Context()))
		return
	}

	asOf, err := parseAsOf(r.URL.Query().Get("asOf"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "asOf must be RFC3339 or YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	matrix, err := h.Service.ComplianceMatrix(r.Context(), user.OrgID, asOf, parseEmployeeFilter(r.URL.Query().Get("employees")))
	if err != nil {
		writeComplianceError(w, r, err)
		return
	}
	api.Success(w, matrix, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID != user.UserID && !auth.CanViewMatrix(user.Role) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	asOf, err := parseAsOf(r.URL.Query().Get("asOf"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "asOf must be RFC3339 or YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	entries, warnings, err := h.Service.EmployeeChecklist(r.Context(), user.OrgID, employeeID, asOf)
	if err != nil {
		writeComplianceError(w, r, err)
		return
	}
	api.Success(w, map[string]any{
		"entries":  entries,
		"warnings": warnings,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if !auth.CanViewMatrix(user.Role) {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager, hr or admin required", middleware.GetRequestID(r.Context()))
		return
	}

	asOf, err := parseAsOf(r.URL.Query().Get("asOf"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "asOf must be RFC3339 or YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	filePath, err := h.Service.ExportSummaryPDF(r.Context(), user.OrgID, asOf, h.ReportDir)
	if err != nil {
		writeComplianceError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"filePath": filePath}, middleware.GetRequestID(r.Context()))
}

func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseEmployeeFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	var filter []string
	for _, id := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			filter = append(filter, trimmed)
		}
	}
	return filter
}

func writeComplianceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, compliance.ErrUnknownOrg), errors.Is(err, compliance.ErrUnknownEmployee):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, compliance.ErrNoMatchingEmployees), errors.Is(err, compliance.ErrNegativeWindow):
		api.Fail(w, http.StatusBadRequest, "bad_request", err.Error(), requestID)
	case errors.Is(err, compliance.ErrSourceUnavailable):
		api.Fail(w, http.StatusServiceUnavailable, "source_unavailable", "a data source is unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal", "internal server error", requestID)
	}
}
