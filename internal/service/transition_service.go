package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/Fahad602/Dash-KanBan/internal/repository"
	pkglogger "github.com/Fahad602/Dash-KanBan/pkg/logger"
)

// TransitionService moves cards between stages.
// It is the only writer of stage transition logs.
type TransitionService interface {
	MoveCard(ctx context.Context, cardID uint64, target domain.Stage) (*domain.TransitionResult, error)
	HandleDrop(ctx context.Context, ev *domain.DropEvent) (*domain.TransitionResult, error)
}

type transitionService struct {
	store    repository.Store
	listener ChangeListener
	now      func() time.Time
}

// NewTransitionService 생성자. listener may be nil.
func NewTransitionService(store repository.Store, listener ChangeListener) TransitionService {
	return &transitionService{
		store:    store,
		listener: listener,
		now:      time.Now,
	}
}

// MoveCard moves the card to target. The stage update and its log row commit
// together. Moving a card to the stage it is already in changes nothing.
func (s *transitionService) MoveCard(ctx context.Context, cardID uint64, target domain.Stage) (*domain.TransitionResult, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, target)
	}

	result := &domain.TransitionResult{}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		card, err := loadActiveCard(ctx, tx, cardID)
		if err != nil {
			return err
		}
		result.Card = card
		if card.Stage == target {
			return nil
		}

		entry := &domain.StageTransitionLog{
			CardID:    card.ID,
			Timestamp: s.now(),
			OldStage:  card.Stage,
			NewStage:  target,
		}
		if err := tx.Cards().UpdateStage(ctx, card.ID, target); err != nil {
			return err
		}
		if err := tx.Transitions().Create(ctx, entry); err != nil {
			return err
		}

		card.Stage = target
		result.Log = entry
		result.Moved = true
		return nil
	})
	if err != nil {
		return nil, common.Persistence(err)
	}
	if !result.Moved {
		return result, nil
	}

	stageTransitionsTotal.WithLabelValues(string(result.Log.OldStage), string(result.Log.NewStage)).Inc()
	pkglogger.GetLogger().Info().
		Uint64("card_id", cardID).
		Str("from", string(result.Log.OldStage)).
		Str("to", string(result.Log.NewStage)).
		Msg("card moved")

	notify(ctx, s.listener, domain.BoardChange{Action: domain.ChangeMoved, CardID: cardID, Stage: target})
	return result, nil
}

// HandleDrop applies a drag-and-drop completion. A drop on an unknown zone is
// ignored; the source zone is only checked for logging.
func (s *transitionService) HandleDrop(ctx context.Context, ev *domain.DropEvent) (*domain.TransitionResult, error) {
	target, ok := domain.StageForZone(ev.TargetZone)
	if !ok {
		pkglogger.GetLogger().Warn().
			Str("target_zone", ev.TargetZone).
			Uint64("card_id", ev.DraggedCardID).
			Msg("drop on unknown zone ignored")
		return &domain.TransitionResult{}, nil
	}

	result, err := s.MoveCard(ctx, ev.DraggedCardID, target)
	if err != nil {
		return nil, err
	}

	if source, ok := domain.StageForZone(ev.SourceZone); ok && result.Log != nil && result.Log.OldStage != source {
		pkglogger.GetLogger().Warn().
			Uint64("card_id", ev.DraggedCardID).
			Str("source_zone", ev.SourceZone).
			Str("stored_stage", string(result.Log.OldStage)).
			Msg("drop source does not match stored stage")
	}
	return result, nil
}
