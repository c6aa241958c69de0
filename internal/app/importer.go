package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// Importer copies quotes from an upstream source into the store on behalf
// of an existing user.
type Importer struct {
	source ports.QuoteSource
	store  *Store
	logger *slog.Logger
}

// ImporterConfig contains the dependencies of the importer.
type ImporterConfig struct {
	Source ports.QuoteSource
	Store  *Store
	Logger *slog.Logger
}

// ImportRequest describes one import run.
type ImportRequest struct {
	UserID uint32

	// Count is the number of upstream fetches. Duplicates within the run
	// are skipped, so fewer quotes may be created.
	Count int

	// Category is passed to the source unchanged. Empty means any.
	Category string

	// Concurrency bounds in-flight fetches. Values below 1 mean 1.
	Concurrency int
}

// ImportResult lists what a run created and what it skipped.
type ImportResult struct {
	Created    []domain.Quote
	Duplicates int
	Failed     int
}

// NewImporter creates an importer with the provided dependencies.
func NewImporter(cfg ImporterConfig) *Importer {
	if cfg.Source == nil {
		panic("app: ImporterConfig.Source is required")
	}

	if cfg.Store == nil {
		panic("app: ImporterConfig.Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Importer{source: cfg.Source, store: cfg.Store, logger: logger}
}

// Import fetches req.Count quotes and submits each distinct one as
// req.UserID. Fetch failures are counted and logged; the run only fails
// when every fetch failed, the user is unknown, or ctx is done.
func (i *Importer) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	ctx, span := tracer.Start(ctx, "Importer.Import")
	defer span.End()

	span.SetAttributes(
		attribute.String("import.source", i.source.Name()),
		attribute.Int("import.count", req.Count),
	)

	if req.Count < 1 {
		return ImportResult{}, domain.NewValidationError("count", "must be at least 1")
	}

	if _, ok := i.store.UserByID(ctx, req.UserID); !ok {
		return ImportResult{}, domain.NewNotFoundError("user", formatUserID(req.UserID))
	}

	drafts, failed, lastErr, err := i.fetch(ctx, req)
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return ImportResult{}, err
	}

	if len(drafts) == 0 && failed > 0 {
		span.RecordError(lastErr)
		span.SetStatus(codes.Error, "all fetches failed")

		return ImportResult{Failed: failed}, lastErr
	}

	result := ImportResult{Failed: failed}
	seen := make(map[string]struct{}, len(drafts))

	for _, d := range drafts {
		key := strings.TrimSpace(d.Text)
		if _, dup := seen[key]; dup {
			result.Duplicates++
			continue
		}

		seen[key] = struct{}{}

		q, err := i.store.CreateQuote(ctx, NewQuoteParams{
			Text:         d.Text,
			Category:     d.Category,
			Source:       d.Source,
			SourcePerson: d.SourcePerson,
			CreatorID:    req.UserID,
		})
		if err != nil {
			// Users are never removed, so this is not expected.
			return result, err
		}

		result.Created = append(result.Created, q)
	}

	i.log(ctx).InfoContext(ctx, "import finished",
		slog.String("source", i.source.Name()),
		slog.Uint64("user_id", uint64(req.UserID)),
		slog.Int("created", len(result.Created)),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

func (i *Importer) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, i.logger)
}

// fetch runs the upstream calls with bounded concurrency. Drafts keep the
// order of the fetch slots so runs against a deterministic source are
// reproducible. Failed fetches are counted, except validation errors which
// abort the run.
func (i *Importer) fetch(ctx context.Context, req ImportRequest) (drafts []domain.QuoteDraft, failed int, lastErr error, err error) {
	slots := make([]*domain.QuoteDraft, req.Count)

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(req.Concurrency, 1))

	for n := range req.Count {
		g.Go(func() error {
			d, err := i.source.FetchQuote(gctx, req.Category)
			if err != nil {
				// A rejected category fails every call the same way.
				if domain.IsValidation(err) {
					return err
				}

				i.log(gctx).WarnContext(gctx, "upstream fetch failed",
					slog.String("source", i.source.Name()),
					slog.Any("error", err),
				)

				mu.Lock()
				failed++
				lastErr = err
				mu.Unlock()

				return nil
			}

			slots[n] = &d

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, nil, err
	}

	drafts = make([]domain.QuoteDraft, 0, req.Count)

	for _, d := range slots {
		if d != nil {
			drafts = append(drafts, *d)
		}
	}

	return drafts, failed, lastErr, nil
}
