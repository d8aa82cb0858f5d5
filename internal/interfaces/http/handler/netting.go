package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	treasuryapp "github.com/treasury/backend/internal/application/treasury"
)

// NettingHandler handles netting agreement and settlement API endpoints
type NettingHandler struct {
	BaseHandler
	service *treasuryapp.NettingService
}

// NewNettingHandler creates a new NettingHandler
func NewNettingHandler(service *treasuryapp.NettingService) *NettingHandler {
	return &NettingHandler{service: service}
}

// RegisterRoutes registers all netting routes
func (h *NettingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	agreements := rg.Group("/treasury/netting/agreements")
	{
		agreements.GET("", h.ListAgreements)
		agreements.POST("", h.CreateAgreement)
		agreements.GET("/:id", h.GetAgreement)
		agreements.POST("/:id/activate", h.ActivateAgreement)
		agreements.POST("/:id/close", h.CloseAgreement)
		agreements.POST("/:id/proposals", h.ProposeSettlement)
		agreements.POST("/:id/settlements", h.ExecuteSettlement)
		agreements.GET("/:id/settlements", h.ListSettlements)
	}

	rg.GET("/treasury/netting/settlements/:id", h.GetSettlement)
}

// CreateAgreement registers a draft netting agreement
func (h *NettingHandler) CreateAgreement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req treasuryapp.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	agreement, err := h.service.CreateAgreement(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, agreement)
}

// GetAgreement retrieves a netting agreement by ID
func (h *NettingHandler) GetAgreement(c *gin.Context) {
	tenantID, agreementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	agreement, err := h.service.GetAgreement(c.Request.Context(), tenantID, agreementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, agreement)
}

// ListAgreements lists the tenant's netting agreements
func (h *NettingHandler) ListAgreements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListAgreements(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// ActivateAgreement transitions an agreement from draft to active
func (h *NettingHandler) ActivateAgreement(c *gin.Context) {
	tenantID, agreementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	agreement, err := h.service.ActivateAgreement(c.Request.Context(), tenantID, agreementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, agreement)
}

// CloseAgreement transitions an agreement from active to closed
func (h *NettingHandler) CloseAgreement(c *gin.Context) {
	tenantID, agreementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	agreement, err := h.service.CloseAgreement(c.Request.Context(), tenantID, agreementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, agreement)
}

// ProposeSettlement computes the current net position under an agreement
func (h *NettingHandler) ProposeSettlement(c *gin.Context) {
	tenantID, agreementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	proposal, err := h.service.ProposeSettlement(c.Request.Context(), tenantID, agreementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, proposal)
}

// ExecuteSettlement settles the confirmed net position
func (h *NettingHandler) ExecuteSettlement(c *gin.Context) {
	tenantID, agreementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req treasuryapp.ExecuteSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settlement, err := h.service.ExecuteSettlement(c.Request.Context(), tenantID, agreementID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, settlement)
}

// GetSettlement retrieves a settlement by ID
func (h *NettingHandler) GetSettlement(c *gin.Context) {
	tenantID, settlementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	settlement, err := h.service.GetSettlement(c.Request.Context(), tenantID, settlementID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settlement)
}

// ListSettlements lists settlements recorded under an agreement
func (h *NettingHandler) ListSettlements(c *gin.Context) {
	tenantID, agreementID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListSettlements(c.Request.Context(), tenantID, agreementID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// tenantAndID extracts the tenant ID and the :id path parameter
func (h *BaseHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, id, true
}
