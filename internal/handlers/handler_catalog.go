package handlers

import (
	"net/http"

	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/dto"
	"github.com/gin-gonic/gin"
)

// catalogHandler serves the read-only configuration catalogs.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newCatalogHandler creates a new catalogHandler.
func newCatalogHandler(catalogService portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
	}
}

// listAccounts godoc
// @Summary List postable accounts
// @Description Retrieves every active account that allows entries
// @Tags catalog
// @Produce  json
// @Success 200 {array} dto.AccountResponse "Postable accounts"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *catalogHandler) listAccounts(c *gin.Context) {
	accounts, err := h.catalogService.ListPostableAccounts(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to list accounts")
		return
	}

	resp := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account by ID
// @Tags catalog
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse "The account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{accountID} [get]
func (h *catalogHandler) getAccount(c *gin.Context) {
	account, err := h.catalogService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listVoucherTypes godoc
// @Summary List voucher types
// @Description Retrieves all configured voucher types
// @Tags catalog
// @Produce  json
// @Success 200 {array} dto.VoucherTypeResponse "Voucher types"
// @Failure 500 {object} map[string]string "Failed to list voucher types"
// @Router /voucher-types [get]
func (h *catalogHandler) listVoucherTypes(c *gin.Context) {
	types, err := h.catalogService.ListVoucherTypes(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to list voucher types")
		return
	}

	resp := make([]dto.VoucherTypeResponse, len(types))
	for i := range types {
		resp[i] = dto.ToVoucherTypeResponse(&types[i])
	}
	c.JSON(http.StatusOK, resp)
}

// listFiscalPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves all fiscal periods
// @Tags catalog
// @Produce  json
// @Success 200 {array} dto.FiscalPeriodResponse "Fiscal periods"
// @Failure 500 {object} map[string]string "Failed to list fiscal periods"
// @Router /fiscal-periods [get]
func (h *catalogHandler) listFiscalPeriods(c *gin.Context) {
	periods, err := h.catalogService.ListFiscalPeriods(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to list fiscal periods")
		return
	}

	resp := make([]dto.FiscalPeriodResponse, len(periods))
	for i := range periods {
		resp[i] = dto.ToFiscalPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getFiscalPeriod godoc
// @Summary Get a fiscal period
// @Description Retrieves a fiscal period by ID
// @Tags catalog
// @Produce  json
// @Param   fiscalPeriodID path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse "The fiscal period"
// @Failure 404 {object} map[string]string "Fiscal period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal period"
// @Router /fiscal-periods/{fiscalPeriodID} [get]
func (h *catalogHandler) getFiscalPeriod(c *gin.Context) {
	period, err := h.catalogService.GetFiscalPeriodByID(c.Request.Context(), c.Param("fiscalPeriodID"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve fiscal period")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// registerCatalogRoutes registers catalog specific routes
func registerCatalogRoutes(group *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	handler := newCatalogHandler(catalogService)

	group.GET("/accounts", handler.listAccounts)
	group.GET("/accounts/:accountID", handler.getAccount)
	group.GET("/voucher-types", handler.listVoucherTypes)
	group.GET("/fiscal-periods", handler.listFiscalPeriods)
	group.GET("/fiscal-periods/:fiscalPeriodID", handler.getFiscalPeriod)
}
