package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/TyroGames/api-sub001/internal/apperrors"
	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/dto"
	"github.com/TyroGames/api-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// respondWithServiceError maps the error taxonomy onto HTTP statuses.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid state for operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Operation conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// requireActorID extracts the acting user ID or aborts the request.
func requireActorID(c *gin.Context) (string, bool) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Actor ID missing from request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return "", false
	}
	return actorID, true
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a new DRAFT journal entry with its lines
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry and lines"
// @Success 201 {object} dto.EntryResponse "The created entry"
// @Failure 400 {object} map[string]string "Invalid request or unbalanced lines"
// @Failure 409 {object} map[string]string "Duplicate entry number"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to create entry")
		return
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines by ID
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries (libro diario)
// @Description Retrieves a filtered, paginated page of entries plus the total count
// @Tags entries
// @Produce  json
// @Param   dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param   dateTo query string false "End date (YYYY-MM-DD)"
// @Param   status query string false "Entry status filter"
// @Param   voucherTypeID query string false "Voucher type filter"
// @Param   thirdPartyID query string false "Third party filter"
// @Param   fiscalPeriodID query string false "Fiscal period filter"
// @Param   entryNumberPrefix query string false "Entry number prefix filter"
// @Param   includeReversals query bool false "Include reversing entries"
// @Param   includeLines query bool false "Attach lines to each entry"
// @Param   limit query int false "Page size (default 20)"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListEntriesResponse "Page of entries"
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	params, err := parseListEntriesParams(c)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid list filters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondWithServiceError(c, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

func parseListEntriesParams(c *gin.Context) (dto.ListEntriesParams, error) {
	var params dto.ListEntriesParams

	parseDate := func(name string) (*time.Time, error) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("invalid " + name + ", expected YYYY-MM-DD")
		}
		return &t, nil
	}
	var err error
	if params.DateFrom, err = parseDate("dateFrom"); err != nil {
		return params, err
	}
	if params.DateTo, err = parseDate("dateTo"); err != nil {
		return params, err
	}

	optional := func(name string) *string {
		if raw := c.Query(name); raw != "" {
			return &raw
		}
		return nil
	}
	params.Status = optional("status")
	params.VoucherTypeID = optional("voucherTypeID")
	params.ThirdPartyID = optional("thirdPartyID")
	params.FiscalPeriodID = optional("fiscalPeriodID")
	params.EntryNumberPrefix = optional("entryNumberPrefix")

	params.IncludeReversals = c.Query("includeReversals") == "true"
	params.IncludeLines = c.Query("includeLines") == "true"

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 200 {
			return params, errors.New("invalid limit, expected an integer between 1 and 200")
		}
		params.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return params, errors.New("invalid offset, expected a non-negative integer")
		}
		params.Offset = offset
	}
	return params, nil
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Replaces the header fields and full line set of a DRAFT entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Updated entry and lines"
// @Success 200 {object} dto.EntryResponse "The updated entry"
// @Failure 400 {object} map[string]string "Invalid request or unbalanced lines"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /entries/{entryID} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), entryID, req, actorID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Transitions a DRAFT entry to POSTED after re-validation
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The posted entry"
// @Failure 400 {object} map[string]string "Entry fails validation"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.PostEntry(c.Request.Context(), entryID, actorID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to post entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates the mirrored reversing entry and marks the original REVERSED
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 201 {object} dto.EntryResponse "The reversing entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in POSTED status"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	reversing, err := h.entryService.ReverseEntry(c.Request.Context(), entryID, actorID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversing.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a DRAFT entry and its lines
// @Tags entries
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Router /entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	actorID, ok := requireActorID(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondWithServiceError(c, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerEntryRoutes registers journal entry specific routes
func registerEntryRoutes(group *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	handler := newEntryHandler(entryService)

	entries := group.Group("/entries")
	{
		entries.POST("", handler.createEntry)
		entries.GET("", handler.listEntries)
		entries.GET("/:entryID", handler.getEntry)
		entries.PUT("/:entryID", handler.updateEntry)
		entries.DELETE("/:entryID", handler.deleteEntry)
		entries.POST("/:entryID/post", handler.postEntry)
		entries.POST("/:entryID/reverse", handler.reverseEntry)
	}
}
