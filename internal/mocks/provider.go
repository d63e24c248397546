package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of llm.Provider
type MockProvider struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Name mocks the Name method
func (m *MockProvider) Name() string {
	return "mock"
}
