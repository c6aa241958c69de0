package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/pencil-api/internal/app"
)

// QuoteHandler handles quote endpoints.
type QuoteHandler struct {
	store *app.Store
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(store *app.Store) *QuoteHandler {
	return &QuoteHandler{store: store}
}

// GetRandomQuote handles GET /api/v1/quotes/random.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	q, ok := h.store.RandomQuote(c.Request.Context())
	if !ok {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "no quotes available")
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// GetQuoteByID handles GET /api/v1/quotes/:id.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id := c.Param("id")

	q, ok := h.store.QuoteByID(c.Request.Context(), id)
	if !ok {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "quote "+id+" not found")
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// CreateQuote handles POST /api/v1/quotes.
//
// @Summary Submit a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.MessageResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	q, err := h.store.CreateQuote(c.Request.Context(), app.NewQuoteParams{
		Text:         req.Text,
		Category:     req.Category,
		Source:       req.Source,
		SourcePerson: req.SourcePerson,
		CreatorID:    req.UserID,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse[dto.QuoteResponse]{
		Message: "quote submitted",
		Data:    dto.NewQuoteResponse(q),
	})
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/:id", h.GetQuoteByID)
	quotes.POST("", h.CreateQuote)
}
