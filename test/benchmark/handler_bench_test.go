package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	httpadapter "github.com/jsamuelsen/pencil-api/internal/adapters/http"
	"github.com/jsamuelsen/pencil-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pencil-api/internal/adapters/idgen"
	"github.com/jsamuelsen/pencil-api/internal/app"
	"github.com/jsamuelsen/pencil-api/internal/mocks"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// newStore returns a store whose saves succeed without touching disk.
func newStore(b *testing.B) *app.Store {
	b.Helper()

	repo := mocks.NewMockContainerRepository(b)
	repo.EXPECT().SaveQuotes(mock.Anything, mock.Anything).Return(nil).Maybe()
	repo.EXPECT().SaveUsers(mock.Anything, mock.Anything).Return(nil).Maybe()
	repo.EXPECT().SaveCollections(mock.Anything, mock.Anything).Return(nil).Maybe()

	return app.NewStore(app.StoreConfig{
		IDs:        idgen.New(),
		Repository: repo,
		RandomSeed: 1,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// newRouter wires the full middleware chain over store.
func newRouter(b *testing.B, store *app.Store) *gin.Engine {
	b.Helper()

	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		HealthHandler: handlers.NewHealthHandler(ports.NewHealthRegistry(),
			handlers.NewBuildInfo("1.0.0", "abc123", "2026-01-01T00:00:00Z"), store),
		QuoteHandler:      handlers.NewQuoteHandler(store),
		CollectionHandler: handlers.NewCollectionHandler(store),
	})

	return engine
}

// seed registers one user and n quotes, returning the user id.
func seed(b *testing.B, store *app.Store, n int) uint32 {
	b.Helper()

	ctx := context.Background()

	u, err := store.RegisterUser(ctx, "bench")
	if err != nil {
		b.Fatal(err)
	}

	for i := range n {
		_, err := store.CreateQuote(ctx, app.NewQuoteParams{Text: fmt.Sprintf("quote %d", i), CreatorID: u.ID})
		if err != nil {
			b.Fatal(err)
		}
	}

	return u.ID
}

// BenchmarkLiveness measures the liveness check through the middleware chain.
func BenchmarkLiveness(b *testing.B) {
	router := newRouter(b, newStore(b))
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkRandomQuote samples from a store of 10k quotes.
func BenchmarkRandomQuote(b *testing.B) {
	store := newStore(b)
	seed(b, store, 10_000)

	router := newRouter(b, store)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/random", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkRandomQuote_Parallel shows contention on the sampler.
func BenchmarkRandomQuote_Parallel(b *testing.B) {
	store := newStore(b)
	seed(b, store, 10_000)

	router := newRouter(b, store)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/random", http.NoBody)
			router.ServeHTTP(httptest.NewRecorder(), req)
		}
	})
}

// BenchmarkCreateQuote measures a create including the save calls, which
// snapshot the whole container.
func BenchmarkCreateQuote(b *testing.B) {
	store := newStore(b)
	userID := seed(b, store, 1_000)

	router := newRouter(b, store)
	body := fmt.Sprintf(`{"hitokoto":"benchmark","user_id":%d}`, userID)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}
