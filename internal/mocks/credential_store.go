package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultgate/vaultgate/internal/model"
)

// CredentialStore is a testify mock for model.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

func (m *CredentialStore) Get(ctx context.Context) (model.StoredCredential, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.StoredCredential), args.Error(1)
}

func (m *CredentialStore) Save(ctx context.Context, credential model.StoredCredential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *CredentialStore) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
