package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/pencil-api/internal/domain"
)

// CreateCollection creates an empty collection owned by ownerID.
//
// The title is validated before anything else. The owner check and the
// recording of the new collection id on the owner happen in one MutateUser
// call; an unknown owner yields a NotFound error and no collection.
func (s *Store) CreateCollection(
	ctx context.Context,
	ownerID uint32,
	title string,
	description *string,
) (domain.Collection, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateCollection")
	defer span.End()

	c, err := domain.NewCollection(s.ids.NewCollectionID(), title, description, ownerID, s.now())
	if err != nil {
		return domain.Collection{}, err
	}

	err = s.MutateUser(ctx, ownerID, func(u *domain.User) error {
		u.AddCollectionID(c.ID)
		return nil
	})
	if err != nil {
		return domain.Collection{}, err
	}

	s.collectionsMu.Lock()
	stored := c.Clone()
	s.collections[c.ID] = &stored
	s.collectionsMu.Unlock()

	s.discardPersist(ctx, s.saveCollections(ctx))

	s.log(ctx).InfoContext(ctx, "collection created",
		slog.String("collection_id", c.ID),
		slog.Uint64("user_id", uint64(ownerID)),
	)

	return c, nil
}

// AddQuoteToCollection adds a quote to a collection. Adding a quote that is
// already a member succeeds without change.
//
// The quote is checked first, then the collection; either missing yields a
// NotFound error and leaves membership unchanged.
func (s *Store) AddQuoteToCollection(ctx context.Context, collectionID, quoteID string) error {
	ctx, span := tracer.Start(ctx, "Store.AddQuoteToCollection", trace.WithAttributes(
		attribute.String("collection_id", collectionID),
		attribute.String("quote_id", quoteID),
	))
	defer span.End()

	if !s.QuoteExists(ctx, quoteID) {
		return domain.NewNotFoundError("quote", quoteID)
	}

	s.collectionsMu.Lock()

	c, ok := s.collections[collectionID]
	if !ok {
		s.collectionsMu.Unlock()
		return domain.NewNotFoundError("collection", collectionID)
	}

	added := c.AddQuote(quoteID)
	s.collectionsMu.Unlock()

	s.discardPersist(ctx, s.saveCollections(ctx))

	s.log(ctx).DebugContext(ctx, "quote added to collection",
		slog.String("collection_id", collectionID),
		slog.String("quote_id", quoteID),
		slog.Bool("changed", added),
	)

	return nil
}

// CollectionByID returns a copy of the collection.
func (s *Store) CollectionByID(_ context.Context, id string) (domain.Collection, bool) {
	s.collectionsMu.Lock()
	defer s.collectionsMu.Unlock()

	c, ok := s.collections[id]
	if !ok {
		return domain.Collection{}, false
	}

	return c.Clone(), true
}

// CollectionWithDetails resolves the member quotes of a collection.
func (s *Store) CollectionWithDetails(ctx context.Context, id string) (domain.CollectionDetails, bool) {
	c, ok := s.CollectionByID(ctx, id)
	if !ok {
		return domain.CollectionDetails{}, false
	}

	return domain.CollectionDetails{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		Quotes:      s.QuotesByIDs(ctx, c.QuoteIDs),
		CreatedAt:   c.CreatedAt,
	}, true
}
