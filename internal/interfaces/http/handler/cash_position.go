package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	treasuryapp "github.com/treasury/backend/internal/application/treasury"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/interfaces/http/dto"
)

// CashPositionHandler handles forecast, liquidity, and position data
// API endpoints
type CashPositionHandler struct {
	BaseHandler
	service *treasuryapp.CashPositionService
}

// NewCashPositionHandler creates a new CashPositionHandler
func NewCashPositionHandler(service *treasuryapp.CashPositionService) *CashPositionHandler {
	return &CashPositionHandler{service: service}
}

// RegisterRoutes registers all cash-position routes
func (h *CashPositionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	treasury := rg.Group("/treasury")
	{
		treasury.POST("/forecast", h.GenerateForecast)
		treasury.GET("/liquidity", h.GetLiquidity)
		treasury.GET("/scenarios", h.ListScenarios)
	}

	accounts := rg.Group("/treasury/accounts")
	{
		accounts.GET("", h.ListBankAccounts)
		accounts.POST("", h.CreateBankAccount)
	}

	flows := rg.Group("/treasury/flows")
	{
		flows.GET("", h.ListScheduledFlows)
		flows.POST("", h.CreateScheduledFlow)
	}

	adjustments := rg.Group("/treasury/adjustments")
	{
		adjustments.POST("", h.CreateAdjustment)
		adjustments.DELETE("/:id", h.DeleteAdjustment)
	}
}

// GenerateForecast projects the cash position over a horizon
func (h *CashPositionHandler) GenerateForecast(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req treasuryapp.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	forecast, err := h.service.GenerateForecast(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, forecast)
}

// GetLiquidity returns the consolidated balance across active accounts
func (h *CashPositionHandler) GetLiquidity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	snapshot, err := h.service.GetLiquidity(c.Request.Context(), tenantID, c.Query("currency"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// ListScenarios returns the supported forecast scenarios
func (h *CashPositionHandler) ListScenarios(c *gin.Context) {
	h.Success(c, h.service.ListScenarios())
}

// CreateBankAccount registers a bank account
func (h *CashPositionHandler) CreateBankAccount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req treasuryapp.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.service.CreateBankAccount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// ListBankAccounts lists the tenant's bank accounts
func (h *CashPositionHandler) ListBankAccounts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListBankAccounts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// CreateScheduledFlow registers an expected cash movement
func (h *CashPositionHandler) CreateScheduledFlow(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req treasuryapp.CreateScheduledFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flow, err := h.service.CreateScheduledFlow(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, flow)
}

// ListScheduledFlows lists the tenant's scheduled flows
func (h *CashPositionHandler) ListScheduledFlows(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	page, err := h.service.ListScheduledFlows(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// CreateAdjustment pins a manual amount onto a forecast day
func (h *CashPositionHandler) CreateAdjustment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req treasuryapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	adjustment, err := h.service.CreateAdjustment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, adjustment)
}

// DeleteAdjustment removes a manual adjustment
func (h *CashPositionHandler) DeleteAdjustment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	adjustmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	if err := h.service.DeleteAdjustment(c.Request.Context(), tenantID, adjustmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// bindFilter binds pagination query parameters into a shared.Filter
func (h *BaseHandler) bindFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return shared.Filter{}, false
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	return filter, true
}
