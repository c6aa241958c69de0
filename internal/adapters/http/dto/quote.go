package dto

import (
	"github.com/jsamuelsen/pencil-api/internal/domain"
)

// CreateQuoteRequest is the body of POST /api/v1/quotes.
type CreateQuoteRequest struct {
	Text         string  `json:"hitokoto"  validate:"notempty"`
	Category     string  `json:"type"`
	Source       string  `json:"from"`
	SourcePerson *string `json:"from_who"`
	UserID       uint32  `json:"user_id"   validate:"required"`
}

// QuoteResponse mirrors the stored quote record. created_at is unix
// seconds.
type QuoteResponse struct {
	ID           string  `json:"uuid"`
	Text         string  `json:"hitokoto"`
	Category     string  `json:"type"`
	Source       string  `json:"from"`
	SourcePerson *string `json:"from_who"`
	Creator      string  `json:"user"`
	CreatorID    uint32  `json:"user_id"`
	CreatedAt    int64   `json:"created_at"`
	Length       int     `json:"length"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:           q.ID,
		Text:         q.Text,
		Category:     q.Category,
		Source:       q.Source,
		SourcePerson: q.SourcePerson,
		Creator:      q.Creator,
		CreatorID:    q.CreatorID,
		CreatedAt:    q.CreatedAt.Unix(),
		Length:       q.Length,
	}
}

// NewQuoteResponses converts quotes, keeping order. The result is never nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, NewQuoteResponse(q))
	}

	return out
}

// MessageResponse wraps a created resource with a confirmation message.
type MessageResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}
