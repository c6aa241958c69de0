package app

import (
	"cmp"
	"context"
	"slices"
	"strconv"
)

// DanglingReference is a stored reference that does not resolve. The API
// never creates one; they appear only when data files are edited by hand.
type DanglingReference struct {
	// Owner is "user:<id>" or "collection:<id>".
	Owner string

	// Kind is the kind of the missing record: "quote" or "collection".
	Kind string

	// ID is the unresolved id.
	ID string
}

// DanglingReferences lists every unresolved reference held by users and
// collections, sorted by owner.
func (s *Store) DanglingReferences(_ context.Context) []DanglingReference {
	type userRefs struct {
		id          uint32
		quotes      []string
		collections []string
	}

	s.usersMu.Lock()
	users := make([]userRefs, 0, len(s.users))
	for _, u := range s.users {
		c := u.Clone()
		users = append(users, userRefs{id: c.ID, quotes: c.QuoteIDs, collections: c.CollectionIDs})
	}
	s.usersMu.Unlock()

	s.collectionsMu.Lock()
	collectionMembers := make(map[string][]string, len(s.collections))
	for id, c := range s.collections {
		collectionMembers[id] = slices.Clone(c.QuoteIDs)
	}
	s.collectionsMu.Unlock()

	s.quotesMu.Lock()
	quoteIDs := make(map[string]struct{}, len(s.quoteIndex))
	for id := range s.quoteIndex {
		quoteIDs[id] = struct{}{}
	}
	s.quotesMu.Unlock()

	var dangling []DanglingReference

	for _, u := range users {
		owner := "user:" + strconv.FormatUint(uint64(u.id), 10)

		for _, qid := range u.quotes {
			if _, ok := quoteIDs[qid]; !ok {
				dangling = append(dangling, DanglingReference{Owner: owner, Kind: "quote", ID: qid})
			}
		}

		for _, cid := range u.collections {
			if _, ok := collectionMembers[cid]; !ok {
				dangling = append(dangling, DanglingReference{Owner: owner, Kind: "collection", ID: cid})
			}
		}
	}

	for cid, members := range collectionMembers {
		for _, qid := range members {
			if _, ok := quoteIDs[qid]; !ok {
				dangling = append(dangling, DanglingReference{Owner: "collection:" + cid, Kind: "quote", ID: qid})
			}
		}
	}

	slices.SortStableFunc(dangling, func(a, b DanglingReference) int {
		if c := cmp.Compare(a.Owner, b.Owner); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return dangling
}
