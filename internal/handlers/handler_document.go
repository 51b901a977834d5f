package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/dto"
	"github.com/TyroGames/api-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests bridging documents and vouchers.
type documentHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newDocumentHandler creates a new documentHandler.
func newDocumentHandler(voucherService portssvc.VoucherSvcFacade) *documentHandler {
	return &documentHandler{
		voucherService: voucherService,
	}
}

// getDocument godoc
// @Summary Get a legal document
// @Description Retrieves a document by ID
// @Tags documents
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse "The document"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	documentID := c.Param("documentID")

	doc, err := h.voucherService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// generateVoucher godoc
// @Summary Generate the journal entry for a document
// @Description Builds and persists the voucher entry for an approved document; at most one entry per (document, voucher type)
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Param   request body dto.GenerateVoucherRequest true "Voucher type"
// @Success 201 {object} dto.EntryResponse "The generated entry"
// @Failure 400 {object} map[string]string "Invalid request or no voucher rule"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Voucher already exists for this pair"
// @Failure 500 {object} map[string]string "Failed to generate voucher"
// @Router /documents/{documentID}/vouchers [post]
func (h *documentHandler) generateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.GenerateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for generateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	entry, err := h.voucherService.GenerateVoucherFromDocument(c.Request.Context(), documentID, req.VoucherTypeID, actorID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to generate voucher")
		return
	}

	logger.Info("Voucher generated", slog.String("document_id", documentID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// cancelDocument godoc
// @Summary Cancel a document
// @Description Cancels a document and cascades to its non-posted entries; blocked while any linked entry is POSTED
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Param   request body dto.CancelDocumentRequest true "Cancellation reason"
// @Success 200 {object} dto.DocumentResponse "The cancelled document"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "A linked entry is still POSTED"
// @Failure 500 {object} map[string]string "Failed to cancel document"
// @Router /documents/{documentID}/cancel [post]
func (h *documentHandler) cancelDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.CancelDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for cancelDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	if err := h.voucherService.CancelDocument(c.Request.Context(), documentID, req.Reason, actorID); err != nil {
		respondWithServiceError(c, err, "Failed to cancel document")
		return
	}

	doc, err := h.voucherService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve cancelled document")
		return
	}

	logger.Info("Document cancelled", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// registerDocumentRoutes registers document specific routes
func registerDocumentRoutes(group *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	handler := newDocumentHandler(voucherService)

	documents := group.Group("/documents")
	{
		documents.GET("/:documentID", handler.getDocument)
		documents.POST("/:documentID/vouchers", handler.generateVoucher)
		documents.POST("/:documentID/cancel", handler.cancelDocument)
	}
}
