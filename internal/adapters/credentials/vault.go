// Package credentials keeps bcrypt password hashes in their own JSON file,
// apart from the record store.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/pencil-api/internal/adapters/persistence/jsonfile"
	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

const container = "credentials"

// Vault implements ports.CredentialVault. Hashes are keyed by user id and
// the whole file is rewritten on every Set.
type Vault struct {
	mu     sync.RWMutex
	hashes map[string]string
	path   string
	cost   int
	logger *slog.Logger
}

var (
	_ ports.CredentialVault = (*Vault)(nil)
	_ ports.HealthChecker   = (*Vault)(nil)
)

// Open reads the credentials file at path. A missing file starts an empty
// vault. cost 0 means bcrypt.DefaultCost.
func Open(path string, cost int, logger *slog.Logger) (*Vault, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, domain.NewValidationErrorWithValue("bcrypt_cost", "out of range", cost)
	}

	v := &Vault{
		hashes: make(map[string]string),
		path:   path,
		cost:   cost,
		logger: logger,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return v, nil
	case err != nil:
		return nil, domain.NewStorageError(domain.StorageKindIO, container, path, err)
	}

	if len(data) == 0 {
		return v, nil
	}

	if err := json.Unmarshal(data, &v.hashes); err != nil {
		return nil, domain.NewStorageError(domain.StorageKindSerialization, container, path, err)
	}

	return v, nil
}

// Set hashes password and stores it for userID, replacing any previous hash.
// Unlike the record store, a failed write is returned to the caller.
func (v *Vault) Set(ctx context.Context, userID uint32, password string) error {
	if password == "" {
		return domain.NewValidationError("password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.NewValidationError("password", "must be at most 72 bytes")
		}

		return fmt.Errorf("failed to hash password: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.hashes[key(userID)] = string(hash)

	data, err := json.MarshalIndent(v.hashes, "", "  ")
	if err != nil {
		return domain.NewStorageError(domain.StorageKindSerialization, container, v.path, err)
	}

	if err := jsonfile.WriteFileAtomic(v.path, data); err != nil {
		return domain.NewStorageError(domain.StorageKindIO, container, v.path, err)
	}

	v.logger.DebugContext(ctx, "credential stored", slog.Uint64("user_id", uint64(userID)))

	return nil
}

// Verify reports whether password matches the stored hash. It returns a
// NotFound error when the user has no credential.
func (v *Vault) Verify(_ context.Context, userID uint32, password string) (bool, error) {
	v.mu.RLock()
	hash, ok := v.hashes[key(userID)]
	v.mu.RUnlock()

	if !ok {
		return false, domain.NewNotFoundError("credential", key(userID))
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
}

// Name implements ports.HealthChecker.
func (v *Vault) Name() string {
	return container
}

// Check reports whether the credentials file, if present, is readable.
func (v *Vault) Check(_ context.Context) error {
	f, err := os.Open(v.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	return f.Close()
}

func key(userID uint32) string {
	return strconv.FormatUint(uint64(userID), 10)
}
