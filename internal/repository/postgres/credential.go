package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vaultgate/vaultgate/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

// CredentialRepository persists the single PIN credential slot. The table
// is constrained to one row, so replacing the credential is a plain
// upsert with no window where old and new material coexist.
type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

func (r *CredentialRepository) Get(ctx context.Context) (model.StoredCredential, error) {
	var cred model.StoredCredential
	var kdfTime, kdfMemKiB int64
	var kdfPar int16
	query := `SELECT salt, hash, kdf_time, kdf_mem_kib, kdf_par, updated_at
			  FROM gate_credential WHERE id = 1`

	err := r.db.QueryRow(ctx, query).Scan(
		&cred.Salt, &cred.Hash, &kdfTime, &kdfMemKiB, &kdfPar, &cred.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.StoredCredential{}, model.ErrNoCredential
		}
		return model.StoredCredential{}, fmt.Errorf("failed to get credential: %w", err)
	}

	cred.KDF = model.KDFParams{
		Time:   uint32(kdfTime),
		MemKiB: uint32(kdfMemKiB),
		Par:    uint8(kdfPar),
	}

	return cred, nil
}

func (r *CredentialRepository) Save(ctx context.Context, credential model.StoredCredential) error {
	query := `INSERT INTO gate_credential (id, salt, hash, kdf_time, kdf_mem_kib, kdf_par, updated_at)
			  VALUES (1, $1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE
			  SET salt = EXCLUDED.salt, hash = EXCLUDED.hash,
				  kdf_time = EXCLUDED.kdf_time, kdf_mem_kib = EXCLUDED.kdf_mem_kib,
				  kdf_par = EXCLUDED.kdf_par, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		credential.Salt, credential.Hash,
		int64(credential.KDF.Time), int64(credential.KDF.MemKiB), int16(credential.KDF.Par),
		credential.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM gate_credential WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	return nil
}
