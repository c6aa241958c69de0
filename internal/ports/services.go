// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter on anything that may block on I/O
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrStorage, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/pencil-api/internal/domain"
)

// IDGenerator produces identifiers believed unique for the lifetime of the
// process. The store calls it instead of a global function so tests can
// supply deterministic ids.
type IDGenerator interface {
	// NewQuoteID returns an opaque id for a new quote.
	NewQuoteID() string

	// NewCollectionID returns an opaque id for a new collection.
	NewCollectionID() string

	// NewUserID returns a numeric id for a new user.
	NewUserID() uint32
}

// ContainerRepository persists the three store containers, one file each.
// Every Save call replaces the whole container; there is no incremental write.
//
// Load semantics:
//   - LoadQuotes fails if the quotes file is absent.
//   - LoadUsers and LoadCollections return an empty slice for an absent file.
//   - A present but undecodable file is always an error.
type ContainerRepository interface {
	LoadQuotes(ctx context.Context) ([]domain.Quote, error)
	LoadUsers(ctx context.Context) ([]domain.User, error)
	LoadCollections(ctx context.Context) ([]domain.Collection, error)

	SaveQuotes(ctx context.Context, quotes []domain.Quote) error
	SaveUsers(ctx context.Context, users []domain.User) error
	SaveCollections(ctx context.Context, collections []domain.Collection) error
}

// CredentialVault stores password hashes separately from the record store.
// The store never sees credentials.
type CredentialVault interface {
	// Set hashes and stores a password for the user, replacing any previous one.
	Set(ctx context.Context, userID uint32, password string) error

	// Verify reports whether password matches the stored hash.
	// Returns domain.ErrNotFound if no credential exists for the user.
	Verify(ctx context.Context, userID uint32, password string) (bool, error)
}

// QuoteSource supplies quote content from outside the store, such as a
// public sentence API. Errors are domain errors: Validation for a rejected
// category, Unavailable when the source cannot be reached.
type QuoteSource interface {
	Name() string
	FetchQuote(ctx context.Context, category string) (domain.QuoteDraft, error)
}
