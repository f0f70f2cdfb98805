// Package credential implements the gate's credential store: a single
// PIN slot persisted as a salted Argon2id hash. The store knows nothing
// about TTLs or biometrics.
package credential

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/vaultgate/vaultgate/internal/logger"
	"github.com/vaultgate/vaultgate/internal/model"
)

// Argon2id parameters are fixed at build time. Changing them only affects
// credentials written afterwards; verification always replays the
// parameters stored with the hash.
const (
	kdfTime   = 3
	kdfMemKiB = 64 * 1024
	kdfPar    = 2

	saltLength = 16
	hashLength = 32
)

// Store derives, verifies and clears the PIN credential on top of a
// persistence backend.
type Store struct {
	credentials model.CredentialStore
	logger      *logger.Logger
}

// NewStore creates a Store backed by the given credential persistence.
func NewStore(credentials model.CredentialStore, logger *logger.Logger) *Store {
	return &Store{
		credentials: credentials,
		logger:      logger,
	}
}

// SetPIN derives a salted hash for pin and replaces any stored credential
// in a single write. The salt is freshly generated on every call, so
// repeated sets of the same PIN produce different stored material.
// Overwriting an existing credential is not an error.
func (s *Store) SetPIN(ctx context.Context, pin string) error {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	kdf := model.KDFParams{Time: kdfTime, MemKiB: kdfMemKiB, Par: kdfPar}
	cred := model.StoredCredential{
		Salt:      salt,
		Hash:      deriveHash(pin, salt, kdf),
		KDF:       kdf,
		UpdatedAt: time.Now(),
	}

	if err := s.credentials.Save(ctx, cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	s.logger.Info("Credential store: PIN replaced")
	return nil
}

// VerifyPIN recomputes the hash for pin with the stored salt and
// parameters and compares it in constant time. Any storage failure or
// malformed stored credential counts as a failed verification; the gate
// fails closed instead of surfacing an error the caller could mistake for
// a transient condition. Neither the PIN nor the hashes are ever logged.
func (s *Store) VerifyPIN(ctx context.Context, pin string) bool {
	cred, ok := s.usableCredential(ctx)
	if !ok {
		return false
	}

	candidate := deriveHash(pin, cred.Salt, cred.KDF)
	return subtle.ConstantTimeCompare(candidate, cred.Hash) == 1
}

// Clear deletes the stored credential. Clearing an empty store is a no-op
// success.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.credentials.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	s.logger.Info("Credential store: PIN cleared")
	return nil
}

// HasPIN reports whether a usable credential exists. It has no side
// effects; corrupt stored data counts as absent so the gate's default
// posture stays locked.
func (s *Store) HasPIN(ctx context.Context) bool {
	_, ok := s.usableCredential(ctx)
	return ok
}

func (s *Store) usableCredential(ctx context.Context) (model.StoredCredential, bool) {
	cred, err := s.credentials.Get(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrNoCredential) {
			s.logger.Error("Credential store: failed to read credential", "error", err.Error())
		}
		return model.StoredCredential{}, false
	}

	if malformed(cred) {
		s.logger.Warn("Credential store: stored credential is malformed, treating as no PIN")
		return model.StoredCredential{}, false
	}

	return cred, true
}

func deriveHash(pin string, salt []byte, kdf model.KDFParams) []byte {
	return argon2.IDKey([]byte(pin), salt, kdf.Time, kdf.MemKiB, kdf.Par, hashLength)
}

// malformed guards the KDF replay: zero-valued parameters would make the
// derivation meaningless, and an empty salt or hash cannot verify anything.
func malformed(cred model.StoredCredential) bool {
	return len(cred.Salt) == 0 ||
		len(cred.Hash) == 0 ||
		cred.KDF.Time == 0 ||
		cred.KDF.MemKiB == 0 ||
		cred.KDF.Par == 0
}
