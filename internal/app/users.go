package app

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen/pencil-api/internal/domain"
)

// RegisterUser creates a user with a fresh id.
//
// Errors:
//   - ValidationError if the username is blank.
//   - AlreadyExistsError if another user has exactly the same username, or
//     the id generator keeps returning ids that are taken.
func (s *Store) RegisterUser(ctx context.Context, username string) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "Store.RegisterUser")
	defer span.End()

	u, err := domain.NewUser(0, username)
	if err != nil {
		return domain.User{}, err
	}

	s.usersMu.Lock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			s.usersMu.Unlock()
			return domain.User{}, domain.NewAlreadyExistsError("user", "username", u.Username)
		}
	}

	assigned := false
	for range maxUserIDAttempts {
		id := s.ids.NewUserID()
		if _, taken := s.users[id]; !taken {
			u.ID = id
			assigned = true

			break
		}
	}

	if !assigned {
		s.usersMu.Unlock()
		return domain.User{}, domain.NewAlreadyExistsError("user", "id", "")
	}

	stored := u.Clone()
	s.users[u.ID] = &stored
	s.usersMu.Unlock()

	s.discardPersist(ctx, s.saveUsers(ctx))

	s.log(ctx).InfoContext(ctx, "user registered",
		slog.Uint64("user_id", uint64(u.ID)),
		slog.String("username", u.Username),
	)

	return u, nil
}

// UserByID returns a copy of the user.
func (s *Store) UserByID(_ context.Context, id uint32) (domain.User, bool) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}

	return u.Clone(), true
}

// UserWithDetails resolves the user's quotes and collections. found is false
// for an unknown user. The user, its quotes and its collections are read
// under separate locks, so the view may mix states from before and after a
// concurrent mutation. The only error is ctx being done.
func (s *Store) UserWithDetails(ctx context.Context, id uint32) (details domain.UserDetails, found bool, err error) {
	u, ok := s.UserByID(ctx, id)
	if !ok {
		return domain.UserDetails{}, false, nil
	}

	quotes, collections, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.QuotesByIDs(ctx, u.QuoteIDs), nil
		},
		func(ctx context.Context) ([]domain.CollectionDetails, error) {
			resolved := make([]domain.CollectionDetails, 0, len(u.CollectionIDs))
			for _, cid := range u.CollectionIDs {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				if d, ok := s.CollectionWithDetails(ctx, cid); ok {
					resolved = append(resolved, d)
				}
			}

			return resolved, nil
		},
	)
	if err != nil {
		return domain.UserDetails{}, false, err
	}

	return domain.UserDetails{
		ID:          u.ID,
		Username:    u.Username,
		Quotes:      quotes,
		Collections: collections,
	}, true, nil
}

// MutateUser runs fn with exclusive access to the user and then persists the
// users container. It is the only way reference lists on a user change.
// fn must not call back into the store. If fn returns an error the user must
// be left untouched; the error is returned and nothing is saved.
func (s *Store) MutateUser(ctx context.Context, id uint32, fn func(*domain.User) error) error {
	s.usersMu.Lock()

	u, ok := s.users[id]
	if !ok {
		s.usersMu.Unlock()
		return domain.NewNotFoundError("user", formatUserID(id))
	}

	err := fn(u)
	s.usersMu.Unlock()

	if err != nil {
		return err
	}

	s.discardPersist(ctx, s.saveUsers(ctx))

	return nil
}

func formatUserID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
