package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vaultgate/vaultgate/internal/mocks"
	"github.com/vaultgate/vaultgate/internal/model"
	"github.com/vaultgate/vaultgate/internal/testutil"
)

func TestStore_SetPIN_ThenVerify(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	var saved model.StoredCredential
	credentials.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(model.StoredCredential)
	}).Return(nil)

	require.NoError(t, store.SetPIN(ctx, "1234"))

	assert.Len(t, saved.Salt, saltLength)
	assert.Len(t, saved.Hash, hashLength)
	assert.NotContains(t, string(saved.Hash), "1234")

	credentials.On("Get", mock.Anything).Return(saved, nil)

	assert.True(t, store.VerifyPIN(ctx, "1234"))
	assert.False(t, store.VerifyPIN(ctx, "1235"))
	assert.False(t, store.VerifyPIN(ctx, ""))
}

func TestStore_SetPIN_FreshSaltPerSet(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	var saves []model.StoredCredential
	credentials.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saves = append(saves, args.Get(1).(model.StoredCredential))
	}).Return(nil)

	require.NoError(t, store.SetPIN(ctx, "1234"))
	require.NoError(t, store.SetPIN(ctx, "1234"))

	require.Len(t, saves, 2)
	assert.NotEqual(t, saves[0].Salt, saves[1].Salt)
	assert.NotEqual(t, saves[0].Hash, saves[1].Hash)
}

func TestStore_SetPIN_SaveError(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	credentials.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := store.SetPIN(ctx, "1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save credential")
}

func TestStore_VerifyPIN_FailsClosedOnReadError(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	credentials.On("Get", mock.Anything).Return(model.StoredCredential{}, errors.New("read failure"))

	assert.False(t, store.VerifyPIN(ctx, "1234"))
	assert.False(t, store.HasPIN(ctx))
}

func TestStore_VerifyPIN_NoCredential(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	credentials.On("Get", mock.Anything).Return(model.StoredCredential{}, model.ErrNoCredential)

	assert.False(t, store.VerifyPIN(ctx, "1234"))
	assert.False(t, store.HasPIN(ctx))
}

func TestStore_MalformedCredentialTreatedAsNoPIN(t *testing.T) {
	tests := []struct {
		name string
		cred model.StoredCredential
	}{
		{
			name: "empty salt",
			cred: model.StoredCredential{Hash: make([]byte, hashLength), KDF: model.KDFParams{Time: 1, MemKiB: 1024, Par: 1}},
		},
		{
			name: "empty hash",
			cred: model.StoredCredential{Salt: make([]byte, saltLength), KDF: model.KDFParams{Time: 1, MemKiB: 1024, Par: 1}},
		},
		{
			name: "zero KDF params",
			cred: model.StoredCredential{Salt: make([]byte, saltLength), Hash: make([]byte, hashLength)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			credentials := &mocks.CredentialStore{}
			store := NewStore(credentials, testutil.MakeNoopLogger())

			credentials.On("Get", mock.Anything).Return(tt.cred, nil)

			assert.False(t, store.HasPIN(ctx))
			assert.False(t, store.VerifyPIN(ctx, "1234"))
		})
	}
}

func TestStore_HasPIN(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	credentials.On("Get", mock.Anything).Return(model.StoredCredential{
		Salt: make([]byte, saltLength),
		Hash: make([]byte, hashLength),
		KDF:  model.KDFParams{Time: kdfTime, MemKiB: kdfMemKiB, Par: kdfPar},
	}, nil)

	assert.True(t, store.HasPIN(ctx))
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	credentials.On("Delete", mock.Anything).Return(nil)

	require.NoError(t, store.Clear(ctx))
	credentials.AssertCalled(t, "Delete", mock.Anything)
}

func TestStore_Clear_DeleteError(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	store := NewStore(credentials, testutil.MakeNoopLogger())

	credentials.On("Delete", mock.Anything).Return(errors.New("connection lost"))

	err := store.Clear(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete credential")
}
