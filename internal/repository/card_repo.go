package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"gorm.io/gorm"
)

// CardRepository 카드 저장소 인터페이스
type CardRepository interface {
	// 조회
	ListByStage(ctx context.Context, stage domain.Stage) ([]*domain.Card, error)
	FindByID(ctx context.Context, id uint64) (*domain.Card, error)
	CountActive(ctx context.Context) (int64, error)

	// 생성/수정
	Create(ctx context.Context, card *domain.Card) error
	SoftDelete(ctx context.Context, id uint64) error
	UpdateStage(ctx context.Context, id uint64, stage domain.Stage) error
	UpdateDueDate(ctx context.Context, id uint64, dueDate *time.Time) error
	UpdateAttachmentsAndAssignment(ctx context.Context, id uint64, patches []domain.AttachmentPatch, secondary *domain.Analyst) error
	UpdateAttachmentSlot(ctx context.Context, id uint64, slot domain.AttachmentSlot, url string) error
}

// cardRepository GORM 구현체
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func invalidStage(stage domain.Stage) error {
	return common.Validation(fmt.Sprintf("unknown stage %q", stage))
}

// ListByStage returns the active cards of stage, newest first
func (r *cardRepository) ListByStage(ctx context.Context, stage domain.Stage) ([]*domain.Card, error) {
	if !stage.Valid() {
		return nil, invalidStage(stage)
	}
	cards := make([]*domain.Card, 0)
	err := r.db.WithContext(ctx).
		Where("stage = ? AND active = ?", stage, true).
		Order("id DESC").
		Find(&cards).Error
	return cards, err
}

// FindByID returns the card with id whether or not it is active
func (r *cardRepository) FindByID(ctx context.Context, id uint64) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// CountActive counts the cards still on the board
func (r *cardRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Card{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

// Create inserts card
func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	if !card.Stage.Valid() {
		return invalidStage(card.Stage)
	}
	return r.db.WithContext(ctx).Omit("PrimaryAnalyst", "SecondaryAnalyst").Create(card).Error
}

// SoftDelete marks the card inactive; repeated calls are harmless
func (r *cardRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// UpdateStage sets the stage column only
func (r *cardRepository) UpdateStage(ctx context.Context, id uint64, stage domain.Stage) error {
	if !stage.Valid() {
		return invalidStage(stage)
	}
	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ?", id).
		Update("stage", stage).Error
}

// UpdateDueDate stores dueDate (nil clears it)
func (r *cardRepository) UpdateDueDate(ctx context.Context, id uint64, dueDate *time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ?", id).
		Update("due_date", dueDate).Error
}

// UpdateAttachmentsAndAssignment writes the present fields of each patch and
// the secondary analyst reference with its denormalized name in one statement.
// Columns a patch leaves nil are not written. A nil secondary keeps the
// current assignment.
func (r *cardRepository) UpdateAttachmentsAndAssignment(ctx context.Context, id uint64, patches []domain.AttachmentPatch, secondary *domain.Analyst) error {
	updates := make(map[string]interface{}, 2*len(patches)+2)
	for _, p := range patches {
		if !p.Slot.Valid() {
			return common.Validation(fmt.Sprintf("unknown attachment slot %q", p.Slot))
		}
		if p.URL != nil {
			updates[p.Slot.URLColumn()] = *p.URL
		}
		if p.Name != nil {
			updates[p.Slot.NameColumn()] = *p.Name
		}
	}
	if secondary != nil {
		updates["secondary_analyst_id"] = secondary.ID
		updates["second_analyst_name"] = secondary.Name
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateAttachmentSlot sets the URL of a single slot, leaving every other column alone
func (r *cardRepository) UpdateAttachmentSlot(ctx context.Context, id uint64, slot domain.AttachmentSlot, url string) error {
	if !slot.Valid() {
		return common.Validation(fmt.Sprintf("unknown attachment slot %q", slot))
	}
	return r.db.WithContext(ctx).Model(&domain.Card{}).
		Where("id = ?", id).
		Update(slot.URLColumn(), url).Error
}
