package domain

import (
	"slices"
	"strings"
	"time"
)

// Collection is a named, user-owned grouping of quote references.
// Membership keeps insertion order and never holds duplicates.
type Collection struct {
	ID          string
	Title       string
	Description *string
	OwnerID     uint32
	QuoteIDs    []string
	CreatedAt   time.Time
}

// NewCollection validates the title and returns an empty collection.
func NewCollection(id, title string, description *string, ownerID uint32, createdAt time.Time) (Collection, error) {
	if strings.TrimSpace(title) == "" {
		return Collection{}, NewValidationError("title", "must not be empty")
	}

	return Collection{
		ID:          id,
		Title:       title,
		Description: cloneString(description),
		OwnerID:     ownerID,
		QuoteIDs:    []string{},
		CreatedAt:   createdAt,
	}, nil
}

// AddQuote appends a quote reference unless it is already a member.
// It reports whether membership changed.
func (c *Collection) AddQuote(quoteID string) bool {
	if slices.Contains(c.QuoteIDs, quoteID) {
		return false
	}

	c.QuoteIDs = append(c.QuoteIDs, quoteID)

	return true
}

// Clone returns an independent copy of c.
func (c Collection) Clone() Collection {
	c.Description = cloneString(c.Description)
	c.QuoteIDs = slices.Clone(c.QuoteIDs)

	return c
}

// CollectionDetails is the composite read view of a collection with its
// member quotes resolved.
type CollectionDetails struct {
	ID          string
	Title       string
	Description *string
	OwnerID     uint32
	Quotes      []Quote
	CreatedAt   time.Time
}
