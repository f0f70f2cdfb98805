package model

import (
	"context"
	"time"
)

// CredentialStore defines persistence operations for the single PIN
// credential slot.
type CredentialStore interface {
	Get(ctx context.Context) (StoredCredential, error)
	Save(ctx context.Context, credential StoredCredential) error
	Delete(ctx context.Context) error
}

// KDFParams holds the Argon2id parameters a credential hash was derived
// with. They are stored alongside the hash so verification replays the
// exact derivation even after the compiled-in defaults change.
type KDFParams struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// StoredCredential represents the salted, irreversibly hashed PIN at rest.
// It never contains the raw PIN and never crosses the API boundary.
type StoredCredential struct {
	Salt      []byte
	Hash      []byte
	KDF       KDFParams
	UpdatedAt time.Time
}
