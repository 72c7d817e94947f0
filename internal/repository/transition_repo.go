package repository

import (
	"context"

	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"gorm.io/gorm"
)

// TransitionRepository stage transition audit log (append-only)
type TransitionRepository interface {
	Create(ctx context.Context, log *domain.StageTransitionLog) error
	ListByCard(ctx context.Context, cardID uint64, limit int) ([]domain.StageTransitionLog, error)
	CountByCard(ctx context.Context, cardID uint64) (int64, error)
}

type transitionRepository struct {
	db *gorm.DB
}

// NewTransitionRepository creates a new TransitionRepository
func NewTransitionRepository(db *gorm.DB) TransitionRepository {
	return &transitionRepository{db: db}
}

// Create appends log
func (r *transitionRepository) Create(ctx context.Context, log *domain.StageTransitionLog) error {
	return r.db.WithContext(ctx).Omit("Card").Create(log).Error
}

// ListByCard returns the card's transitions oldest first (limit <= 0 means all)
func (r *transitionRepository) ListByCard(ctx context.Context, cardID uint64, limit int) ([]domain.StageTransitionLog, error) {
	list := make([]domain.StageTransitionLog, 0)
	q := r.db.WithContext(ctx).Where("card_id = ?", cardID).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

// CountByCard counts the card's transitions
func (r *transitionRepository) CountByCard(ctx context.Context, cardID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.StageTransitionLog{}).
		Where("card_id = ?", cardID).
		Count(&count).Error
	return count, err
}
