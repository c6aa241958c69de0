package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jsamuelsen/pencil-api/internal/domain"
)

// quoteRecord is the on-disk shape of a quote.
type quoteRecord struct {
	UUID         string       `json:"uuid"`
	Text         string       `json:"hitokoto"`
	Category     string       `json:"type"`
	Source       string       `json:"from"`
	SourcePerson *string      `json:"from_who"`
	Creator      string       `json:"user"`
	CreatorID    uint32       `json:"user_id"`
	CreatedAt    epochSeconds `json:"created_at"`
	Length       int          `json:"length"`
}

type userRecord struct {
	UserID      uint32   `json:"user_id"`
	Username    string   `json:"username"`
	Items       []string `json:"items"`
	Collections []string `json:"collections"`
}

type collectionRecord struct {
	CollectionID string       `json:"collection_id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	UserID       uint32       `json:"user_id"`
	QuoteIDs     []string     `json:"hitokoto_ids"`
	CreatedAt    epochSeconds `json:"created_at"`
}

// epochSeconds is a unix timestamp in whole seconds. It is written as a
// JSON number and decodes from either a number or a string holding one.
type epochSeconds struct {
	time.Time
}

func (e epochSeconds) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(e.Unix(), 10)), nil
}

func (e *epochSeconds) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}

		raw = []byte(s)
	}

	secs, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unix timestamp %q: %w", raw, err)
	}

	e.Time = time.Unix(secs, 0).UTC()

	return nil
}

func fromQuote(q domain.Quote) quoteRecord {
	return quoteRecord{
		UUID:         q.ID,
		Text:         q.Text,
		Category:     q.Category,
		Source:       q.Source,
		SourcePerson: q.SourcePerson,
		Creator:      q.Creator,
		CreatorID:    q.CreatorID,
		CreatedAt:    epochSeconds{Time: q.CreatedAt},
		Length:       q.Length,
	}
}

// toQuote ignores the stored length and derives it again from the text.
func (r quoteRecord) toQuote() domain.Quote {
	return domain.NewQuote(
		r.UUID, r.Text, r.Category, r.Source, r.SourcePerson,
		r.Creator, r.CreatorID, r.CreatedAt.Time,
	)
}

func fromUser(u domain.User) userRecord {
	return userRecord{
		UserID:      u.ID,
		Username:    u.Username,
		Items:       nonNil(u.QuoteIDs),
		Collections: nonNil(u.CollectionIDs),
	}
}

func (r userRecord) toUser() domain.User {
	return domain.User{
		ID:            r.UserID,
		Username:      r.Username,
		QuoteIDs:      nonNil(r.Items),
		CollectionIDs: nonNil(r.Collections),
	}
}

func fromCollection(c domain.Collection) collectionRecord {
	return collectionRecord{
		CollectionID: c.ID,
		Title:        c.Title,
		Description:  c.Description,
		UserID:       c.OwnerID,
		QuoteIDs:     nonNil(c.QuoteIDs),
		CreatedAt:    epochSeconds{Time: c.CreatedAt},
	}
}

func (r collectionRecord) toCollection() domain.Collection {
	return domain.Collection{
		ID:          r.CollectionID,
		Title:       r.Title,
		Description: r.Description,
		OwnerID:     r.UserID,
		QuoteIDs:    nonNil(r.QuoteIDs),
		CreatedAt:   r.CreatedAt.Time,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
