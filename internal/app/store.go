// Package app contains the record store that keeps quotes, users and
// collections consistent under concurrent access.
//
// The store is the application layer: it enforces the rules that span more
// than one entity and drives persistence through ports. HTTP specifics live
// in adapters, file formats live in the persistence adapter.
package app

import (
	"cmp"
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// Container names used in logs and storage errors.
const (
	ContainerQuotes      = "quotes"
	ContainerUsers       = "users"
	ContainerCollections = "collections"
)

var tracer = otel.Tracer("github.com/jsamuelsen/pencil-api/internal/app")

// maxUserIDAttempts bounds the retries when the generator returns a user id
// that is already taken.
const maxUserIDAttempts = 16

// Store owns the quote, user and collection containers.
//
// Locking contract:
//   - Each container has its own mutex. The random source has another, and
//     it is only taken while the quotes mutex is held.
//   - Operations touching several containers visit them in the order
//     users, collections, quotes and release each lock before taking the
//     next. Two container locks are never held at the same time.
//   - Saves take the container's save mutex first, snapshot under the
//     container lock, release it, then write. Snapshots reach the disk in
//     the order they were taken.
//
// Reads return clones; nothing inside a container escapes its lock.
type Store struct {
	usersMu sync.Mutex
	users   map[uint32]*domain.User

	collectionsMu sync.Mutex
	collections   map[string]*domain.Collection

	quotesMu   sync.Mutex
	quotes     []*domain.Quote
	quoteIndex map[string]int

	rngMu sync.Mutex
	rng   *rand.Rand

	saveUsersMu       sync.Mutex
	saveCollectionsMu sync.Mutex
	saveQuotesMu      sync.Mutex

	ids    ports.IDGenerator
	repo   ports.ContainerRepository
	now    func() time.Time
	logger *slog.Logger
}

// StoreConfig contains the dependencies of the store.
type StoreConfig struct {
	// IDs generates quote, collection and user ids. Required.
	IDs ports.IDGenerator

	// Repository persists containers. Required.
	Repository ports.ContainerRepository

	// Clock returns the creation time for new records. Defaults to time.Now.
	// Times are stored in UTC truncated to whole seconds, the precision of
	// the data files.
	Clock func() time.Time

	// RandomSeed seeds the quote sampler. Zero picks a seed at random.
	RandomSeed uint64

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewStore creates an empty store. Call Load to populate it from disk.
func NewStore(cfg StoreConfig) *Store {
	if cfg.IDs == nil {
		panic("app: StoreConfig.IDs is required")
	}

	if cfg.Repository == nil {
		panic("app: StoreConfig.Repository is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Store{
		users:       make(map[uint32]*domain.User),
		collections: make(map[string]*domain.Collection),
		quoteIndex:  make(map[string]int),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ids:         cfg.IDs,
		repo:        cfg.Repository,
		now:         func() time.Time { return clock().UTC().Truncate(time.Second) },
		logger:      logger,
	}
}

// Load replaces the store contents with what the repository holds.
// Any error is fatal to startup: a missing quotes file or an undecodable
// file of any container.
func (s *Store) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Store.Load")
	defer span.End()

	quotes, users, collections, err := Parallel3(ctx,
		s.repo.LoadQuotes,
		s.repo.LoadUsers,
		s.repo.LoadCollections,
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.usersMu.Lock()
	s.users = make(map[uint32]*domain.User, len(users))
	for _, u := range users {
		u := u.Clone()
		s.users[u.ID] = &u
	}
	s.usersMu.Unlock()

	s.collectionsMu.Lock()
	s.collections = make(map[string]*domain.Collection, len(collections))
	for _, c := range collections {
		c := c.Clone()
		s.collections[c.ID] = &c
	}
	s.collectionsMu.Unlock()

	s.quotesMu.Lock()
	s.quotes = make([]*domain.Quote, 0, len(quotes))
	s.quoteIndex = make(map[string]int, len(quotes))
	for _, q := range quotes {
		if _, dup := s.quoteIndex[q.ID]; dup {
			s.log(ctx).WarnContext(ctx, "skipping duplicate quote id", slog.String("quote_id", q.ID))
			continue
		}

		q := q.Clone()
		s.quoteIndex[q.ID] = len(s.quotes)
		s.quotes = append(s.quotes, &q)
	}
	s.quotesMu.Unlock()

	s.log(ctx).InfoContext(ctx, "store loaded",
		slog.Int(ContainerQuotes, len(quotes)),
		slog.Int(ContainerUsers, len(users)),
		slog.Int(ContainerCollections, len(collections)),
	)

	return nil
}

// Counts reports the number of records in each container.
func (s *Store) Counts() (quotes, users, collections int) {
	s.usersMu.Lock()
	users = len(s.users)
	s.usersMu.Unlock()

	s.collectionsMu.Lock()
	collections = len(s.collections)
	s.collectionsMu.Unlock()

	s.quotesMu.Lock()
	quotes = len(s.quotes)
	s.quotesMu.Unlock()

	return quotes, users, collections
}

// persistResult is the outcome of one best-effort container save.
// Callers hand it to discardPersist; the mutation that triggered the save
// has already committed and is never rolled back.
type persistResult struct {
	container string
	err       error
}

// log returns the request logger carried by ctx, so request_id and
// correlation_id reach store log lines, or the store's own logger.
func (s *Store) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

// discardPersist logs a failed save and drops it. The next successful save
// of the same container writes the then-current state.
func (s *Store) discardPersist(ctx context.Context, r persistResult) {
	if r.err == nil {
		return
	}

	trace.SpanFromContext(ctx).RecordError(r.err, trace.WithAttributes(
		attribute.String("container", r.container),
	))

	s.log(ctx).ErrorContext(ctx, "failed to persist container",
		slog.String("container", r.container),
		slog.Any("error", r.err),
	)
}

// saveUsers writes the whole users container. Saves ignore the caller's
// cancellation: once a mutation commits its write is not abandoned.
func (s *Store) saveUsers(ctx context.Context) persistResult {
	s.saveUsersMu.Lock()
	defer s.saveUsersMu.Unlock()

	s.usersMu.Lock()
	snapshot := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		snapshot = append(snapshot, u.Clone())
	}
	s.usersMu.Unlock()

	slices.SortFunc(snapshot, func(a, b domain.User) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return persistResult{
		container: ContainerUsers,
		err:       s.repo.SaveUsers(context.WithoutCancel(ctx), snapshot),
	}
}

func (s *Store) saveCollections(ctx context.Context) persistResult {
	s.saveCollectionsMu.Lock()
	defer s.saveCollectionsMu.Unlock()

	s.collectionsMu.Lock()
	snapshot := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		snapshot = append(snapshot, c.Clone())
	}
	s.collectionsMu.Unlock()

	slices.SortFunc(snapshot, func(a, b domain.Collection) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return persistResult{
		container: ContainerCollections,
		err:       s.repo.SaveCollections(context.WithoutCancel(ctx), snapshot),
	}
}

func (s *Store) saveQuotes(ctx context.Context) persistResult {
	s.saveQuotesMu.Lock()
	defer s.saveQuotesMu.Unlock()

	s.quotesMu.Lock()
	snapshot := make([]domain.Quote, len(s.quotes))
	for i, q := range s.quotes {
		snapshot[i] = q.Clone()
	}
	s.quotesMu.Unlock()

	return persistResult{
		container: ContainerQuotes,
		err:       s.repo.SaveQuotes(context.WithoutCancel(ctx), snapshot),
	}
}
