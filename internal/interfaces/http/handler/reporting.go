package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	treasuryapp "github.com/treasury/backend/internal/application/treasury"
)

// ReportingHandler handles aging and reconciliation API endpoints
type ReportingHandler struct {
	BaseHandler
	service *treasuryapp.ReportingService
}

// NewReportingHandler creates a new ReportingHandler
func NewReportingHandler(service *treasuryapp.ReportingService) *ReportingHandler {
	return &ReportingHandler{service: service}
}

// RegisterRoutes registers all reporting routes
func (h *ReportingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/treasury/reports")
	{
		reports.GET("/aging", h.AgingReport)
		reports.POST("/reconciliation", h.Reconcile)
	}
}

// AgingReport classifies open receivables into overdue buckets.
// An optional as_of query parameter (RFC 3339 date) sets the reference
// date; it defaults to today.
func (h *ReportingHandler) AgingReport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var asOf *time.Time
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = &parsed
	}

	report, err := h.service.AgingReport(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// Reconcile compares the receivables subledger against a general-ledger
// control account
func (h *ReportingHandler) Reconcile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req treasuryapp.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Reconcile(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
