package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/pencil-api/internal/app"
)

// CollectionHandler handles collection endpoints.
type CollectionHandler struct {
	store *app.Store
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(store *app.Store) *CollectionHandler {
	return &CollectionHandler{store: store}
}

// CreateCollection handles POST /api/v1/collections.
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var req dto.CreateCollectionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	col, err := h.store.CreateCollection(c.Request.Context(), req.UserID, req.Title, req.Description)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCollectionResponse(col))
}

// GetCollection handles GET /api/v1/collections/:id.
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id := c.Param("id")

	details, ok := h.store.CollectionWithDetails(c.Request.Context(), id)
	if !ok {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "collection "+id+" not found")
		return
	}

	c.JSON(http.StatusOK, dto.NewCollectionDetailsResponse(details))
}

// AddQuote handles POST /api/v1/collections/:id/quotes. Adding a quote that
// is already a member succeeds.
func (h *CollectionHandler) AddQuote(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	if err := h.store.AddQuoteToCollection(c.Request.Context(), c.Param("id"), req.QuoteID); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "quote added"})
}

// RegisterCollectionRoutes registers collection routes on the given router group.
func (h *CollectionHandler) RegisterCollectionRoutes(rg *gin.RouterGroup) {
	collections := rg.Group("/collections")
	collections.POST("", h.CreateCollection)
	collections.GET("/:id", h.GetCollection)
	collections.POST("/:id/quotes", h.AddQuote)
}
