package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/Fahad602/Dash-KanBan/internal/repository"
	pkglogger "github.com/Fahad602/Dash-KanBan/pkg/logger"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// 카드 에러 정의
var (
	ErrCardNotFound      = common.NotFound("card")
	ErrStockNameRequired = common.Validation("stock name is required")
	ErrUnknownAnalyst    = common.Validation("unknown analyst")
	ErrInvalidStage      = common.Validation("invalid stage")
	ErrInvalidDueDate    = common.Validation("due date must be YYYY-MM-DD")
)

const dueDateLayout = "2006-01-02"

var cardValidator = validator.New()

// CardService 카드 서비스 인터페이스
type CardService interface {
	// 조회
	GetByID(ctx context.Context, id uint64) (*domain.Card, error)
	ListByStage(ctx context.Context, stageName string) ([]*domain.Card, error)
	ListAnalysts(ctx context.Context) ([]domain.Analyst, error)
	History(ctx context.Context, id uint64) ([]domain.StageTransitionLog, error)

	// 생성/삭제
	Create(ctx context.Context, req *domain.CreateCardRequest) (*domain.Card, error)
	SoftDelete(ctx context.Context, id uint64) error
}

// cardService 구현체
type cardService struct {
	store    repository.Store
	listener ChangeListener
	now      func() time.Time
}

// NewCardService 생성자. listener may be nil.
func NewCardService(store repository.Store, listener ChangeListener) CardService {
	return &cardService{
		store:    store,
		listener: listener,
		now:      time.Now,
	}
}

// placeholderIdentifiers derives the sedol and isin placeholders from t.
// They are not checksummed market identifiers.
func placeholderIdentifiers(t time.Time) (sedol, isin int64) {
	n := t.UnixNano()
	return n % 100_000_000, (n / 1_000) % 100_000_000
}

// dateOf truncates t to its calendar day
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDueDate parses a YYYY-MM-DD date; an empty string means no due date
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return &t, nil
}

// resolveAnalyst loads the analyst with id; an unknown id is a validation error
func resolveAnalyst(ctx context.Context, store repository.Store, id uint64) (*domain.Analyst, error) {
	analyst, err := store.Analysts().FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownAnalyst, id)
	}
	if err != nil {
		return nil, err
	}
	return analyst, nil
}

// loadActiveCard loads a card that is still on the board
func loadActiveCard(ctx context.Context, store repository.Store, id uint64) (*domain.Card, error) {
	card, err := store.Cards().FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	if !card.Active {
		return nil, ErrCardNotFound
	}
	return card, nil
}

func validateAttachmentLinks(attachments []domain.Attachment) error {
	for _, a := range attachments {
		if err := common.ValidateAttachmentLink(a.URL); err != nil {
			return err
		}
	}
	return nil
}

// GetByID 카드 조회 (비활성 카드 포함)
func (s *cardService) GetByID(ctx context.Context, id uint64) (*domain.Card, error) {
	card, err := s.store.Cards().FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, common.Persistence(err)
	}
	return card, nil
}

// ListByStage 스테이지별 활성 카드 목록
func (s *cardService) ListByStage(ctx context.Context, stageName string) ([]*domain.Card, error) {
	stage, ok := domain.ParseStage(stageName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stageName)
	}
	cards, err := s.store.Cards().ListByStage(ctx, stage)
	if err != nil {
		return nil, common.Persistence(err)
	}
	return cards, nil
}

// ListAnalysts 애널리스트 목록
func (s *cardService) ListAnalysts(ctx context.Context) ([]domain.Analyst, error) {
	list, err := s.store.Analysts().List(ctx)
	if err != nil {
		return nil, common.Persistence(err)
	}
	return list, nil
}

// History returns the card's stage transitions oldest first
func (s *cardService) History(ctx context.Context, id uint64) ([]domain.StageTransitionLog, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	logs, err := s.store.Transitions().ListByCard(ctx, id, 0)
	if err != nil {
		return nil, common.Persistence(err)
	}
	return logs, nil
}

// Create 카드 생성. New cards always start active in Ideas.
func (s *cardService) Create(ctx context.Context, req *domain.CreateCardRequest) (*domain.Card, error) {
	req.Normalize()
	if req.StockName == "" {
		return nil, ErrStockNameRequired
	}
	if err := cardValidator.Struct(req); err != nil {
		return nil, common.Validation(err.Error())
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	attachments := req.Attachments()
	if err := validateAttachmentLinks(attachments); err != nil {
		return nil, err
	}

	cardType := req.Type
	if cardType == "" {
		cardType = domain.DefaultCardType
	}

	now := s.now()
	sedol, isin := placeholderIdentifiers(now)
	card := &domain.Card{
		Type:      cardType,
		Stage:     domain.StageIdeas,
		EntryDate: dateOf(now),
		DueDate:   dueDate,
		StockName: req.StockName,
		Sedol:     sedol,
		ISIN:      isin,
		Active:    true,
	}
	for _, a := range attachments {
		card.SetAttachment(a)
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if req.PrimaryAnalystID != nil {
			primary, err := resolveAnalyst(ctx, tx, *req.PrimaryAnalystID)
			if err != nil {
				return err
			}
			card.PrimaryAnalystID = &primary.ID
			card.AnalystName = primary.Name
		}
		if req.SecondaryAnalystID != nil {
			secondary, err := resolveAnalyst(ctx, tx, *req.SecondaryAnalystID)
			if err != nil {
				return err
			}
			card.SecondaryAnalystID = &secondary.ID
			card.SecondAnalystName = secondary.Name
		}
		return tx.Cards().Create(ctx, card)
	})
	if err != nil {
		return nil, common.Persistence(err)
	}

	cardsCreatedTotal.Inc()
	pkglogger.GetLogger().Info().
		Uint64("card_id", card.ID).
		Str("stock_name", card.StockName).
		Msg("card created")

	notify(ctx, s.listener, domain.BoardChange{Action: domain.ChangeCreated, CardID: card.ID, Stage: card.Stage})
	return card, nil
}

// SoftDelete 카드 소프트 삭제. Deleting an already inactive card is a no-op.
func (s *cardService) SoftDelete(ctx context.Context, id uint64) error {
	var deleted *domain.Card
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		card, err := tx.Cards().FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		if err != nil {
			return err
		}
		if !card.Active {
			return nil
		}
		if err := tx.Cards().SoftDelete(ctx, id); err != nil {
			return err
		}
		deleted = card
		return nil
	})
	if err != nil {
		return common.Persistence(err)
	}
	if deleted == nil {
		return nil
	}

	cardsDeletedTotal.Inc()
	pkglogger.GetLogger().Info().
		Uint64("card_id", id).
		Str("stage", string(deleted.Stage)).
		Msg("card deleted")

	notify(ctx, s.listener, domain.BoardChange{Action: domain.ChangeDeleted, CardID: id, Stage: deleted.Stage})
	return nil
}
