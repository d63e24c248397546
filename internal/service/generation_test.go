package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smart-kitchen/backend/config"
	"github.com/pageza/smart-kitchen/backend/internal/llm"
	"github.com/pageza/smart-kitchen/backend/internal/mocks"
	"github.com/pageza/smart-kitchen/backend/internal/models"
	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/stock"
)

func testConfig(apiKey string) *config.Config {
	return &config.Config{Provider: config.ProviderGemini, ProviderAPIKey: apiKey}
}

func snapshotOf(t *testing.T, items ...[3]string) stock.Snapshot {
	t.Helper()
	s := stock.New()
	for _, it := range items {
		_, err := s.Add(it[0], it[1], stock.Unit(it[2]))
		require.NoError(t, err)
	}
	return s.Snapshot()
}

func TestGenerate_EmptyStock(t *testing.T) {
	provider := &mocks.MockProvider{}
	svc := service.NewGenerationService(testConfig("key"), provider, nil)

	result := svc.Generate(context.Background(), service.NewGenerationRequest("s1", nil))

	require.False(t, result.OK())
	assert.Empty(t, result.Recipe)
	assert.Equal(t, service.KindEmptyStock, result.Err.Kind)
	assert.True(t, errors.Is(result.Err, service.ErrEmptyStock))
	assert.Equal(t, http.StatusBadRequest, result.Err.StatusCode())
	provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerate_MissingCredential(t *testing.T) {
	provider := &mocks.MockProvider{}
	svc := service.NewGenerationService(testConfig(""), provider, nil)
	snap := snapshotOf(t, [3]string{"Eggs", "6", "Unité(s)"})

	result := svc.Generate(context.Background(), service.NewGenerationRequest("s1", snap))

	require.False(t, result.OK())
	assert.Equal(t, service.KindMissingCredential, result.Err.Kind)
	assert.Equal(t, "API key not configured", result.Err.Message)
	assert.Equal(t, http.StatusInternalServerError, result.Err.StatusCode())
	provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerate_Success(t *testing.T) {
	snap := stock.Snapshot{
		{Name: "Eggs", Quantity: "6 units"},
		{Name: "Flour", Quantity: "200 g"},
	}

	provider := &mocks.MockProvider{}
	provider.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		eggs := strings.Index(prompt, "- Eggs (6 units)")
		flour := strings.Index(prompt, "- Flour (200 g)")
		return eggs >= 0 && flour > eggs
	})).Return("```html<h3>Title</h3>```", nil).Once()

	svc := service.NewGenerationService(testConfig("key"), provider, nil)
	result := svc.Generate(context.Background(), service.NewGenerationRequest("s1", snap))

	require.True(t, result.OK())
	assert.Nil(t, result.Err)
	assert.Equal(t, "<h3>Title</h3>", result.Recipe)
	provider.AssertExpectations(t)
}

func TestGenerate_ProviderErrors(t *testing.T) {
	snap := stock.Snapshot{{Name: "Riz", Quantity: "500 g"}}

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "provider message is passed through",
			err:     &llm.APIError{Provider: "gemini", StatusCode: 403, Message: "API key not valid"},
			wantMsg: "API key not valid",
		},
		{
			name:    "transport failure",
			err:     errors.New("failed to send request: connection refused"),
			wantMsg: "failed to send request: connection refused",
		},
		{
			name:    "timeout",
			err:     context.DeadlineExceeded,
			wantMsg: "The recipe provider did not answer in time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mocks.MockProvider{}
			provider.On("Generate", mock.Anything, mock.Anything).Return("", tt.err).Once()

			svc := service.NewGenerationService(testConfig("key"), provider, nil)
			result := svc.Generate(context.Background(), service.NewGenerationRequest("s1", snap))

			require.False(t, result.OK())
			assert.Empty(t, result.Recipe)
			assert.Equal(t, service.KindProvider, result.Err.Kind)
			assert.Equal(t, tt.wantMsg, result.Err.Message)
			assert.Equal(t, http.StatusBadGateway, result.Err.StatusCode())
			assert.ErrorIs(t, result.Err, service.ErrProvider)
		})
	}
}

func TestGenerate_PanicBecomesProviderError(t *testing.T) {
	provider := &mocks.MockProvider{}
	provider.On("Generate", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	}).Return("", nil)

	svc := service.NewGenerationService(testConfig("key"), provider, nil)

	var result service.GenerationResult
	require.NotPanics(t, func() {
		result = svc.Generate(context.Background(), service.NewGenerationRequest("s1", stock.Snapshot{{Name: "Sel"}}))
	})
	require.False(t, result.OK())
	assert.Equal(t, service.KindProvider, result.Err.Kind)
	assert.Equal(t, "Failed to generate recipe", result.Err.Message)
}

func TestGenerate_RecordsAudit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := &mocks.MockProvider{}
		provider.On("Generate", mock.Anything, mock.Anything).Return("<p>ok</p>", nil)

		audit := &mocks.MockAuditRecorder{}
		audit.On("Record", mock.Anything, mock.MatchedBy(func(r *models.GenerationRecord) bool {
			return r.SessionID == "s1" && r.Outcome == models.OutcomeSucceeded &&
				r.IngredientCount == 2 && r.ErrorKind == "" && r.Provider == "mock"
		})).Return(nil).Once()

		svc := service.NewGenerationService(testConfig("key"), provider, audit)
		snap := stock.Snapshot{{Name: "A"}, {Name: "B"}}
		result := svc.Generate(context.Background(), service.NewGenerationRequest("s1", snap))

		assert.True(t, result.OK())
		audit.AssertExpectations(t)
	})

	t.Run("failure with broken audit store", func(t *testing.T) {
		audit := &mocks.MockAuditRecorder{}
		audit.On("Record", mock.Anything, mock.MatchedBy(func(r *models.GenerationRecord) bool {
			return r.Outcome == models.OutcomeFailed && r.ErrorKind == string(service.KindEmptyStock)
		})).Return(errors.New("database is locked")).Once()

		svc := service.NewGenerationService(testConfig("key"), &mocks.MockProvider{}, audit)
		result := svc.Generate(context.Background(), service.NewGenerationRequest("s1", nil))

		require.False(t, result.OK())
		assert.Equal(t, service.KindEmptyStock, result.Err.Kind, "audit failures must not change the result")
		audit.AssertExpectations(t)
	})
}

func TestNewGenerationRequest_CopiesSnapshot(t *testing.T) {
	snap := stock.Snapshot{{Name: "Tomates", Quantity: "3 Unité(s)"}}
	req := service.NewGenerationRequest("s1", snap)

	snap[0].Name = "Changed"

	assert.Equal(t, "Tomates", req.Snapshot[0].Name)
	assert.NotEqual(t, req.ID, service.NewGenerationRequest("s1", snap).ID)
}
