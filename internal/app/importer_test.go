package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/mocks"
)

func newTestImporter(t *testing.T, source *mocks.MockQuoteSource) (*Importer, *Store) {
	t.Helper()

	source.EXPECT().Name().Return("fake").Maybe()

	s, _ := newTestStore(t)

	return NewImporter(ImporterConfig{Source: source, Store: s, Logger: discardLogger()}), s
}

func TestNewImporter_PanicsWithoutDependencies(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Panics(t, func() { NewImporter(ImporterConfig{Store: s}) })
	assert.Panics(t, func() { NewImporter(ImporterConfig{Source: mocks.NewMockQuoteSource(t)}) })
}

func TestImport(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	imp, s := newTestImporter(t, source)
	alice := mustRegister(t, s, "alice")

	var n atomic.Int32

	who := "Steve Jobs"
	source.EXPECT().FetchQuote(mock.Anything, "d").RunAndReturn(
		func(context.Context, string) (domain.QuoteDraft, error) {
			return domain.QuoteDraft{
				Text:         fmt.Sprintf("quote %d", n.Add(1)),
				Category:     "d",
				Source:       "speech",
				SourcePerson: &who,
			}, nil
		},
	).Times(5)

	result, err := imp.Import(context.Background(), ImportRequest{
		UserID:      alice.ID,
		Count:       5,
		Category:    "d",
		Concurrency: 3,
	})
	require.NoError(t, err)

	assert.Len(t, result.Created, 5)
	assert.Zero(t, result.Duplicates)
	assert.Zero(t, result.Failed)

	for _, q := range result.Created {
		assert.Equal(t, "alice", q.Creator)
		assert.Equal(t, alice.ID, q.CreatorID)
		assert.Equal(t, "d", q.Category)
	}

	u, ok := s.UserByID(context.Background(), alice.ID)
	require.True(t, ok)
	assert.Len(t, u.QuoteIDs, 5)
}

func TestImport_SkipsDuplicatesAndFailures(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	imp, s := newTestImporter(t, source)
	alice := mustRegister(t, s, "alice")

	var n atomic.Int32

	source.EXPECT().FetchQuote(mock.Anything, "").RunAndReturn(
		func(context.Context, string) (domain.QuoteDraft, error) {
			switch n.Add(1) {
			case 1, 2, 3:
				return domain.QuoteDraft{Text: "same"}, nil
			case 4:
				return domain.QuoteDraft{}, domain.NewUnavailableError("fake", "status 503", nil)
			default:
				return domain.QuoteDraft{Text: "other"}, nil
			}
		},
	).Times(5)

	result, err := imp.Import(context.Background(), ImportRequest{UserID: alice.ID, Count: 5})
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	assert.Equal(t, 2, result.Duplicates)
	assert.Equal(t, 1, result.Failed)
}

func TestImport_AllFetchesFail(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	imp, s := newTestImporter(t, source)
	alice := mustRegister(t, s, "alice")

	source.EXPECT().FetchQuote(mock.Anything, "").
		Return(domain.QuoteDraft{}, domain.NewUnavailableError("fake", "circuit open", nil)).
		Times(3)

	result, err := imp.Import(context.Background(), ImportRequest{UserID: alice.ID, Count: 3, Concurrency: 2})
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, 3, result.Failed)

	quotes, _, _ := s.Counts()
	assert.Zero(t, quotes)
}

func TestImport_ValidationAbortsRun(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	imp, s := newTestImporter(t, source)
	alice := mustRegister(t, s, "alice")

	source.EXPECT().FetchQuote(mock.Anything, "zz").
		Return(domain.QuoteDraft{}, domain.NewValidationError("category", "rejected by upstream")).
		Maybe()

	_, err := imp.Import(context.Background(), ImportRequest{UserID: alice.ID, Count: 4, Category: "zz"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestImport_RejectsBadRequests(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	imp, s := newTestImporter(t, source)
	alice := mustRegister(t, s, "alice")

	_, err := imp.Import(context.Background(), ImportRequest{UserID: alice.ID, Count: 0})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = imp.Import(context.Background(), ImportRequest{UserID: 9999, Count: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImport_CancelledContext(t *testing.T) {
	source := mocks.NewMockQuoteSource(t)
	imp, s := newTestImporter(t, source)
	alice := mustRegister(t, s, "alice")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source.EXPECT().FetchQuote(mock.Anything, "").RunAndReturn(
		func(ctx context.Context, _ string) (domain.QuoteDraft, error) {
			cancel()
			return domain.QuoteDraft{}, ctx.Err()
		},
	).Maybe()

	_, err := imp.Import(ctx, ImportRequest{UserID: alice.ID, Count: 2})
	require.ErrorIs(t, err, context.Canceled)
}
