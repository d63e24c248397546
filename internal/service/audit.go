package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/smart-kitchen/backend/internal/models"
)

const maxAuditPage = 200

// AuditService stores generation attempts for operators.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditService instance
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record implements AuditRecorder.
func (s *AuditService) Record(ctx context.Context, record *models.GenerationRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save generation record: %w", err)
	}
	return nil
}

// AuditFilter narrows ListRecent.
type AuditFilter struct {
	SessionID string
	Outcome   string
	Limit     int
}

// ListRecent returns the newest records first.
func (s *AuditService) ListRecent(ctx context.Context, filter AuditFilter) ([]models.GenerationRecord, error) {
	limit := filter.Limit
	if limit <= 0 || limit > maxAuditPage {
		limit = 50
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}

	var records []models.GenerationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list generation records: %w", err)
	}
	return records, nil
}

// Stats counts records by outcome.
func (s *AuditService) Stats(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Outcome string
		Count   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.GenerationRecord{}).
		Select("outcome, COUNT(*) AS count").
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count generation records: %w", err)
	}

	stats := map[string]int64{models.OutcomeSucceeded: 0, models.OutcomeFailed: 0}
	for _, row := range rows {
		stats[row.Outcome] = row.Count
	}
	return stats, nil
}
