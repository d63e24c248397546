package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/smart-kitchen/backend/internal/models"
	"github.com/pageza/smart-kitchen/backend/internal/service"
)

// MockGenerator is a mock implementation of service.Generator
type MockGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockGenerator) Generate(ctx context.Context, req service.GenerationRequest) service.GenerationResult {
	args := m.Called(ctx, req)
	return args.Get(0).(service.GenerationResult)
}

// MockAuditRecorder is a mock implementation of service.AuditRecorder
type MockAuditRecorder struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockAuditRecorder) Record(ctx context.Context, record *models.GenerationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
