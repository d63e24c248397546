package testhelpers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/smart-kitchen/backend/internal/models"
	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/testhelpers"
)

func exerciseAudit(t *testing.T, db *gorm.DB) {
	t.Helper()
	audit := service.NewAuditService(db)
	ctx := context.Background()

	require.NoError(t, audit.Record(ctx, &models.GenerationRecord{
		RequestID: uuid.New(), SessionID: "s1", Provider: "gemini", IngredientCount: 2, Outcome: models.OutcomeSucceeded,
	}))
	require.NoError(t, audit.Record(ctx, &models.GenerationRecord{
		RequestID: uuid.New(), SessionID: "s1", Provider: "gemini", Outcome: models.OutcomeFailed,
		ErrorKind: "provider_error", Message: "Quota exceeded",
	}))

	records, err := audit.ListRecent(ctx, service.AuditFilter{SessionID: "s1"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	stats, err := audit.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{models.OutcomeSucceeded: 1, models.OutcomeFailed: 1}, stats)
}

func TestSetupAuditDB(t *testing.T) {
	db := testhelpers.SetupAuditDB(t)
	assert.True(t, db.Migrator().HasTable(&models.GenerationRecord{}))
	exerciseAudit(t, db)
}

func TestSetupPostgresDB(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	assert.True(t, db.Migrator().HasTable(&models.GenerationRecord{}))
	exerciseAudit(t, db)
}
