package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smart-kitchen/backend/internal/models"
	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/testhelpers"
)

func TestAuditService_RecordAndList(t *testing.T) {
	db := testhelpers.SetupAuditDB(t)
	audit := service.NewAuditService(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	records := []*models.GenerationRecord{
		{CreatedAt: base, RequestID: uuid.New(), SessionID: "a", Outcome: models.OutcomeSucceeded, IngredientCount: 3},
		{CreatedAt: base.Add(time.Minute), RequestID: uuid.New(), SessionID: "b", Outcome: models.OutcomeFailed, ErrorKind: "provider_error", Message: "quota"},
		{CreatedAt: base.Add(2 * time.Minute), RequestID: uuid.New(), SessionID: "a", Outcome: models.OutcomeFailed, ErrorKind: "empty_stock"},
	}
	for _, r := range records {
		require.NoError(t, audit.Record(ctx, r))
		assert.NotEqual(t, uuid.Nil, r.ID)
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := audit.ListRecent(ctx, service.AuditFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, records[2].ID, got[0].ID)
		assert.Equal(t, records[0].ID, got[2].ID)
	})

	t.Run("filter by session", func(t *testing.T) {
		got, err := audit.ListRecent(ctx, service.AuditFilter{SessionID: "a"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filter by outcome and limit", func(t *testing.T) {
		got, err := audit.ListRecent(ctx, service.AuditFilter{Outcome: models.OutcomeFailed, Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "empty_stock", got[0].ErrorKind)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := audit.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats[models.OutcomeSucceeded])
		assert.Equal(t, int64(2), stats[models.OutcomeFailed])
	})
}

func TestGenerationService_WritesAuditRows(t *testing.T) {
	db := testhelpers.SetupAuditDB(t)
	audit := service.NewAuditService(db)
	svc := service.NewGenerationService(testConfig(""), nil, audit)

	result := svc.Generate(context.Background(), service.NewGenerationRequest("s9", snapshotOf(t, [3]string{"Thon", "1", "Unité(s)"})))
	require.False(t, result.OK())

	got, err := audit.ListRecent(context.Background(), service.AuditFilter{SessionID: "s9"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.OutcomeFailed, got[0].Outcome)
	assert.Equal(t, string(service.KindMissingCredential), got[0].ErrorKind)
	assert.Equal(t, 1, got[0].IngredientCount)
}
