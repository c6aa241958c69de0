package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/pencil-api/internal/domain"
)

// NewQuoteParams contains the caller-supplied fields of a new quote.
// Length is not among them; it is always derived from Text.
type NewQuoteParams struct {
	Text         string
	Category     string
	Source       string
	SourcePerson *string
	CreatorID    uint32
}

// CreateQuote adds a quote submitted by an existing user and records it on
// that user. Returns a NotFound error if the creator does not exist.
//
// The creator check and the id append happen under one users lock; the
// quote is inserted afterwards, so a concurrent UserWithDetails may briefly
// list an id that QuotesByIDs does not resolve yet.
func (s *Store) CreateQuote(ctx context.Context, p NewQuoteParams) (domain.Quote, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateQuote")
	defer span.End()

	id := s.ids.NewQuoteID()

	var q domain.Quote

	err := s.MutateUser(ctx, p.CreatorID, func(u *domain.User) error {
		q = domain.NewQuote(
			id,
			p.Text,
			p.Category,
			p.Source,
			p.SourcePerson,
			u.Username,
			u.ID,
			s.now(),
		)
		u.AddQuoteID(id)

		return nil
	})
	if err != nil {
		return domain.Quote{}, err
	}

	s.quotesMu.Lock()
	stored := q.Clone()
	s.quoteIndex[stored.ID] = len(s.quotes)
	s.quotes = append(s.quotes, &stored)
	s.quotesMu.Unlock()

	s.discardPersist(ctx, s.saveQuotes(ctx))

	s.log(ctx).InfoContext(ctx, "quote created",
		slog.String("quote_id", q.ID),
		slog.Uint64("user_id", uint64(q.CreatorID)),
		slog.Int("length", q.Length),
	)

	return q, nil
}

// RandomQuote returns a uniformly chosen quote. ok is false when the store
// holds no quotes.
func (s *Store) RandomQuote(_ context.Context) (q domain.Quote, ok bool) {
	s.quotesMu.Lock()
	defer s.quotesMu.Unlock()

	if len(s.quotes) == 0 {
		return domain.Quote{}, false
	}

	s.rngMu.Lock()
	i := s.rng.IntN(len(s.quotes))
	s.rngMu.Unlock()

	return s.quotes[i].Clone(), true
}

// QuoteExists reports whether a quote with the given id is stored.
func (s *Store) QuoteExists(_ context.Context, id string) bool {
	s.quotesMu.Lock()
	defer s.quotesMu.Unlock()

	_, ok := s.quoteIndex[id]

	return ok
}

// QuoteByID returns a single quote.
func (s *Store) QuoteByID(_ context.Context, id string) (domain.Quote, bool) {
	s.quotesMu.Lock()
	defer s.quotesMu.Unlock()

	i, ok := s.quoteIndex[id]
	if !ok {
		return domain.Quote{}, false
	}

	return s.quotes[i].Clone(), true
}

// QuotesByIDs returns the stored quotes whose id is in ids. The result
// follows store order, not the order of ids, and unknown ids are skipped.
// It is never nil.
func (s *Store) QuotesByIDs(_ context.Context, ids []string) []domain.Quote {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	s.quotesMu.Lock()
	defer s.quotesMu.Unlock()

	result := make([]domain.Quote, 0, len(wanted))
	for _, q := range s.quotes {
		if _, ok := wanted[q.ID]; ok {
			result = append(result, q.Clone())
		}
	}

	return result
}
