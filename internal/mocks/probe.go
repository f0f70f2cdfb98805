package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Probe is a testify mock for biometric.Probe.
type Probe struct {
	mock.Mock
}

func (m *Probe) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Probe) Prompt(ctx context.Context, reason string) error {
	args := m.Called(ctx, reason)
	return args.Error(0)
}
