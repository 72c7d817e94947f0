package repository

import (
	"context"

	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"gorm.io/gorm"
)

// AnalystRepository 애널리스트 저장소 인터페이스 (읽기 전용)
type AnalystRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Analyst, error)
	List(ctx context.Context) ([]domain.Analyst, error)
}

type analystRepository struct {
	db *gorm.DB
}

// NewAnalystRepository creates a new AnalystRepository
func NewAnalystRepository(db *gorm.DB) AnalystRepository {
	return &analystRepository{db: db}
}

// FindByID returns the analyst with id
func (r *analystRepository) FindByID(ctx context.Context, id uint64) (*domain.Analyst, error) {
	var analyst domain.Analyst
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&analyst).Error; err != nil {
		return nil, err
	}
	return &analyst, nil
}

// List returns every analyst ordered by name
func (r *analystRepository) List(ctx context.Context) ([]domain.Analyst, error) {
	list := make([]domain.Analyst, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}
