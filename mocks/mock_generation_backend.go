package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"labsimplify/internal/port"
)

// MockGenerationBackend is a mock implementation of port.GenerationBackend.
type MockGenerationBackend struct {
	mock.Mock
}

func (m *MockGenerationBackend) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}
