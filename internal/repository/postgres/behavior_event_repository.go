package postgres

import (
	"context"
	"fmt"

	"ivolexMarket/domain"

	"gorm.io/gorm"
)

// BehaviorEventRepository is the append-only durable log of recorded events.
type BehaviorEventRepository struct {
	DB *gorm.DB
}

func NewBehaviorEventRepository(db *gorm.DB) *BehaviorEventRepository {
	return &BehaviorEventRepository{DB: db}
}

func (r *BehaviorEventRepository) SaveEvent(ctx context.Context, record domain.BehaviorEventRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save behavior event: %w", err)
	}

	return nil
}

func (r *BehaviorEventRepository) FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.BehaviorEventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 100
	}

	var records []domain.BehaviorEventRecord
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find behavior events: %w", err)
	}

	return records, nil
}
