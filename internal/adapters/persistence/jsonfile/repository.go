// Package jsonfile persists the store containers as pretty-printed JSON
// arrays, one file per container. Every save rewrites the whole file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// Container names, matching the ones the store logs.
const (
	containerQuotes      = "quotes"
	containerUsers       = "users"
	containerCollections = "collections"
)

// Default file names, compatible with existing data directories.
const (
	DefaultQuotesFile      = "hitokoto.json"
	DefaultUsersFile       = "user.json"
	DefaultCollectionsFile = "collection.json"
)

// Config locates the data files. Relative file names are resolved
// against Dir.
type Config struct {
	Dir             string
	QuotesFile      string
	UsersFile       string
	CollectionsFile string
}

// Repository implements ports.ContainerRepository on the local filesystem.
// It also reports readiness as a ports.HealthChecker.
type Repository struct {
	paths   map[string]string
	dir     string
	metrics *Metrics
	logger  *slog.Logger
}

var (
	_ ports.ContainerRepository = (*Repository)(nil)
	_ ports.HealthChecker       = (*Repository)(nil)
)

// New creates a repository. metrics and logger may be nil.
func New(cfg Config, metrics *Metrics, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	resolve := func(name, fallback string) string {
		if name == "" {
			name = fallback
		}

		if filepath.IsAbs(name) {
			return name
		}

		return filepath.Join(dir, name)
	}

	return &Repository{
		paths: map[string]string{
			containerQuotes:      resolve(cfg.QuotesFile, DefaultQuotesFile),
			containerUsers:       resolve(cfg.UsersFile, DefaultUsersFile),
			containerCollections: resolve(cfg.CollectionsFile, DefaultCollectionsFile),
		},
		dir:     dir,
		metrics: metrics,
		logger:  logger,
	}
}

// Path returns the file backing a container.
func (r *Repository) Path(container string) string {
	return r.paths[container]
}

// LoadQuotes reads the quotes file, which must exist. Stored lengths are
// ignored and recomputed from the text.
func (r *Repository) LoadQuotes(ctx context.Context) ([]domain.Quote, error) {
	var records []quoteRecord
	if err := r.load(ctx, containerQuotes, true, &records); err != nil {
		return nil, err
	}

	quotes := make([]domain.Quote, 0, len(records))
	for _, rec := range records {
		quotes = append(quotes, rec.toQuote())
	}

	return quotes, nil
}

// LoadUsers reads the users file. A missing or blank file means no users.
func (r *Repository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := r.load(ctx, containerUsers, false, &records); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toUser())
	}

	return users, nil
}

// LoadCollections reads the collections file. A missing or blank file means
// no collections.
func (r *Repository) LoadCollections(ctx context.Context) ([]domain.Collection, error) {
	var records []collectionRecord
	if err := r.load(ctx, containerCollections, false, &records); err != nil {
		return nil, err
	}

	collections := make([]domain.Collection, 0, len(records))
	for _, rec := range records {
		collections = append(collections, rec.toCollection())
	}

	return collections, nil
}

// SaveQuotes overwrites the quotes file.
func (r *Repository) SaveQuotes(ctx context.Context, quotes []domain.Quote) error {
	records := make([]quoteRecord, len(quotes))
	for i, q := range quotes {
		records[i] = fromQuote(q)
	}

	return r.save(ctx, containerQuotes, records)
}

// SaveUsers overwrites the users file.
func (r *Repository) SaveUsers(ctx context.Context, users []domain.User) error {
	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = fromUser(u)
	}

	return r.save(ctx, containerUsers, records)
}

// SaveCollections overwrites the collections file.
func (r *Repository) SaveCollections(ctx context.Context, collections []domain.Collection) error {
	records := make([]collectionRecord, len(collections))
	for i, c := range collections {
		records[i] = fromCollection(c)
	}

	return r.save(ctx, containerCollections, records)
}

// Initialize creates every missing data file holding an empty array and
// returns the paths it created. Existing files are left alone.
func (r *Repository) Initialize(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, domain.NewStorageError(domain.StorageKindIO, "data", r.dir, err)
	}

	var created []string

	for _, container := range []string{containerQuotes, containerUsers, containerCollections} {
		path := r.paths[container]

		_, err := os.Stat(path)
		if err == nil {
			continue
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return created, domain.NewStorageError(domain.StorageKindIO, container, path, err)
		}

		if err := r.save(ctx, container, []struct{}{}); err != nil {
			return created, err
		}

		created = append(created, path)
	}

	return created, nil
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string {
	return "datastore"
}

// Check verifies that the data directory accepts new files.
func (r *Repository) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp(r.dir, ".ready-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}

	name := f.Name()
	_ = f.Close()

	return os.Remove(name)
}

func (r *Repository) load(ctx context.Context, container string, required bool, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := r.paths[container]

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			r.logger.InfoContext(ctx, "data file absent, starting empty",
				slog.String("container", container),
				slog.String("path", path),
			)

			return nil
		}

		return domain.NewStorageError(domain.StorageKindIO, container, path, err)
	}

	if !required && len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewStorageError(domain.StorageKindSerialization, container, path, err)
	}

	return nil
}

// save writes to a temporary file in the same directory and renames it over
// the target, so readers never observe a half-written file.
func (r *Repository) save(ctx context.Context, container string, records any) (err error) {
	start := time.Now()
	defer func() { r.metrics.observeWrite(container, start, err) }()

	path := r.paths[container]

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return domain.NewStorageError(domain.StorageKindSerialization, container, path, err)
	}

	if err := WriteFileAtomic(path, data); err != nil {
		return domain.NewStorageError(domain.StorageKindIO, container, path, err)
	}

	r.logger.DebugContext(ctx, "container saved",
		slog.String("container", container),
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// WriteFileAtomic replaces path with data through a temporary file in the same
// directory and a rename.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return err
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}

	return nil
}
