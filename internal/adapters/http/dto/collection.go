package dto

import "github.com/jsamuelsen/pencil-api/internal/domain"

// CreateCollectionRequest is the body of POST /api/v1/collections.
type CreateCollectionRequest struct {
	UserID      uint32  `json:"user_id"     validate:"required"`
	Title       string  `json:"title"       validate:"notempty"`
	Description *string `json:"description"`
}

// AddQuoteRequest is the body of POST /api/v1/collections/:id/quotes.
type AddQuoteRequest struct {
	QuoteID string `json:"hitokoto_uuid" validate:"notempty"`
}

// SuccessResponse acknowledges an update that returns no resource.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CollectionResponse mirrors the stored collection record. created_at is
// unix seconds as a number.
type CollectionResponse struct {
	ID          string   `json:"collection_id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	OwnerID     uint32   `json:"user_id"`
	QuoteIDs    []string `json:"hitokoto_ids"`
	CreatedAt   int64    `json:"created_at"`
}

// NewCollectionResponse converts a domain collection.
func NewCollectionResponse(c domain.Collection) CollectionResponse {
	return CollectionResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		QuoteIDs:    nonNil(c.QuoteIDs),
		CreatedAt:   c.CreatedAt.Unix(),
	}
}

// CollectionDetailsResponse is a collection with member quotes resolved.
type CollectionDetailsResponse struct {
	ID          string          `json:"collection_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	OwnerID     uint32          `json:"user_id"`
	Quotes      []QuoteResponse `json:"hitokoto_items"`
	CreatedAt   int64           `json:"created_at"`
}

// NewCollectionDetailsResponse converts the composite collection view.
func NewCollectionDetailsResponse(d domain.CollectionDetails) CollectionDetailsResponse {
	return CollectionDetailsResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		Quotes:      NewQuoteResponses(d.Quotes),
		CreatedAt:   d.CreatedAt.Unix(),
	}
}
