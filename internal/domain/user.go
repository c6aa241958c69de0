package domain

import (
	"slices"
	"strings"
)

// User is an account owning quotes and collections by reference.
type User struct {
	ID       uint32
	Username string

	// QuoteIDs lists quotes submitted by the user, oldest first.
	QuoteIDs []string

	// CollectionIDs lists collections owned by the user, oldest first.
	CollectionIDs []string
}

// NewUser validates the username and returns a user with empty reference lists.
// The username is stored trimmed.
func NewUser(id uint32, username string) (User, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return User{}, NewValidationError("username", "must not be empty")
	}

	return User{
		ID:            id,
		Username:      name,
		QuoteIDs:      []string{},
		CollectionIDs: []string{},
	}, nil
}

// AddQuoteID records ownership of a quote.
func (u *User) AddQuoteID(id string) {
	u.QuoteIDs = append(u.QuoteIDs, id)
}

// AddCollectionID records ownership of a collection. Duplicates are ignored.
func (u *User) AddCollectionID(id string) {
	if slices.Contains(u.CollectionIDs, id) {
		return
	}

	u.CollectionIDs = append(u.CollectionIDs, id)
}

// Clone returns an independent copy of u.
func (u User) Clone() User {
	u.QuoteIDs = slices.Clone(u.QuoteIDs)
	u.CollectionIDs = slices.Clone(u.CollectionIDs)

	return u
}

// UserDetails is the composite read view of a user with resolved references.
type UserDetails struct {
	ID          uint32
	Username    string
	Quotes      []Quote
	Collections []CollectionDetails
}
