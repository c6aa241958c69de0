package dto

import "github.com/jsamuelsen/pencil-api/internal/domain"

// RegisterUserRequest is the body of POST /api/v1/users. Password is
// optional; when present it is stored in the credentials vault.
//
// bcrypt reads at most 72 bytes of a password, so the upper bound is in
// bytes, not characters.
type RegisterUserRequest struct {
	Username string  `json:"username" validate:"notempty"`
	Password *string `json:"password" validate:"omitempty,min=8,maxbytes=72"`
}

// VerifyCredentialsRequest is the body of POST /api/v1/users/:id/credentials/verify.
type VerifyCredentialsRequest struct {
	Password string `json:"password" validate:"required"`
}

// VerifyCredentialsResponse reports whether the password matched.
type VerifyCredentialsResponse struct {
	Valid bool `json:"valid"`
}

// UserResponse mirrors the stored user record.
type UserResponse struct {
	ID            uint32   `json:"user_id"`
	Username      string   `json:"username"`
	QuoteIDs      []string `json:"items"`
	CollectionIDs []string `json:"collections"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		QuoteIDs:      nonNil(u.QuoteIDs),
		CollectionIDs: nonNil(u.CollectionIDs),
	}
}

// UserDetailsResponse is a user with quotes and collections resolved.
type UserDetailsResponse struct {
	ID          uint32                      `json:"user_id"`
	Username    string                      `json:"username"`
	Quotes      []QuoteResponse             `json:"items"`
	Collections []CollectionDetailsResponse `json:"collections"`
}

// NewUserDetailsResponse converts the composite user view.
func NewUserDetailsResponse(d domain.UserDetails) UserDetailsResponse {
	collections := make([]CollectionDetailsResponse, 0, len(d.Collections))
	for _, c := range d.Collections {
		collections = append(collections, NewCollectionDetailsResponse(c))
	}

	return UserDetailsResponse{
		ID:          d.ID,
		Username:    d.Username,
		Quotes:      NewQuoteResponses(d.Quotes),
		Collections: collections,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
