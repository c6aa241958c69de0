// Package acl translates upstream quote APIs into domain types so their
// models never leak past the adapter.
package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jsamuelsen/pencil-api/internal/adapters/clients"
	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// sentence is one item of the public hitokoto sentence API.
type sentence struct {
	UUID     string  `json:"uuid"`
	Hitokoto string  `json:"hitokoto"`
	Type     string  `json:"type"`
	From     string  `json:"from"`
	FromWho  *string `json:"from_who"`
	Creator  string  `json:"creator"`
	Length   int     `json:"length"`
}

// HitokotoSource implements ports.QuoteSource over a hitokoto-compatible
// sentence API.
type HitokotoSource struct {
	client *clients.Client
	logger *slog.Logger
}

var _ ports.QuoteSource = (*HitokotoSource)(nil)

// NewHitokotoSource wraps client. Panics if client is nil.
func NewHitokotoSource(client *clients.Client, logger *slog.Logger) *HitokotoSource {
	if client == nil {
		panic("acl: client is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HitokotoSource{client: client, logger: logger}
}

// Name identifies the upstream.
func (s *HitokotoSource) Name() string {
	return "hitokoto"
}

// FetchQuote asks for one random sentence. An empty category means any.
func (s *HitokotoSource) FetchQuote(ctx context.Context, category string) (domain.QuoteDraft, error) {
	query := url.Values{"encode": {"json"}}
	if category != "" {
		query.Set("c", category)
	}

	s.logger.Log(ctx, logging.LevelTrace, "fetching sentence", slog.String("category", category))

	var resp sentence
	if err := s.client.GetJSON(ctx, "/", query, &resp); err != nil {
		return domain.QuoteDraft{}, translateError(s.Name(), err)
	}

	return toDraft(resp)
}

// toDraft maps a sentence onto quote content. The upstream id, creator and
// length are dropped: the store assigns its own and derives length.
func toDraft(s sentence) (domain.QuoteDraft, error) {
	text := strings.TrimSpace(s.Hitokoto)
	if text == "" {
		return domain.QuoteDraft{}, domain.NewValidationError("hitokoto", "upstream returned an empty sentence")
	}

	var who *string
	if s.FromWho != nil {
		if trimmed := strings.TrimSpace(*s.FromWho); trimmed != "" {
			who = &trimmed
		}
	}

	return domain.QuoteDraft{
		Text:         text,
		Category:     s.Type,
		Source:       strings.TrimSpace(s.From),
		SourcePerson: who,
	}, nil
}

// translateError maps client failures to domain errors. A 400 means the
// category was rejected; everything else makes the source unavailable.
func translateError(service string, err error) error {
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
		return domain.NewValidationError("category", "rejected by "+service)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(service, "circuit open", nil)
	case errors.Is(err, clients.ErrRetriesExhausted):
		return domain.NewUnavailableError(service, "retries exhausted", err)
	default:
		return domain.NewUnavailableError(service, "", err)
	}
}
