package domain

import (
	"time"
	"unicode/utf8"
)

// Quote is an attributed text record, the atomic content unit of the store.
// Quotes are immutable once created.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID string

	// Text is the content of the quote.
	Text string

	// Category is a free-form type tag.
	Category string

	// Source is the work the quote was taken from.
	Source string

	// SourcePerson is who said or wrote the quote, when known.
	SourcePerson *string

	// Creator is the username of the submitting user at creation time.
	Creator string

	// CreatorID is the user_id of the submitting user.
	CreatorID uint32

	// CreatedAt is when the quote was submitted.
	CreatedAt time.Time

	// Length is the number of characters in Text.
	Length int
}

// QuoteDraft is quote content obtained outside the store, before it has
// an id, a creator or a timestamp.
type QuoteDraft struct {
	Text         string
	Category     string
	Source       string
	SourcePerson *string
}

// NewQuote builds a quote. Length is always derived from text.
func NewQuote(
	id, text, category, source string,
	sourcePerson *string,
	creator string,
	creatorID uint32,
	createdAt time.Time,
) Quote {
	return Quote{
		ID:           id,
		Text:         text,
		Category:     category,
		Source:       source,
		SourcePerson: cloneString(sourcePerson),
		Creator:      creator,
		CreatorID:    creatorID,
		CreatedAt:    createdAt,
		Length:       CharacterCount(text),
	}
}

// CharacterCount counts Unicode code points, not bytes.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}

// Clone returns an independent copy of q.
func (q Quote) Clone() Quote {
	q.SourcePerson = cloneString(q.SourcePerson)
	return q
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}
