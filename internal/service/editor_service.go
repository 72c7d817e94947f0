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

// ErrInvalidSlot is returned for an attachment slot outside link1..link5, other
var ErrInvalidSlot = common.Validation("invalid attachment slot")

// EditorService edits the attachments and assignment of a card
type EditorService interface {
	ApplyEdits(ctx context.Context, cardID uint64, edits *domain.CardEdits) (*domain.Card, error)
	SetSingleAttachment(ctx context.Context, cardID uint64, slot domain.AttachmentSlot, url string) (*domain.Card, error)
}

type editorService struct {
	store    repository.Store
	listener ChangeListener
}

// NewEditorService 생성자. listener may be nil.
func NewEditorService(store repository.Store, listener ChangeListener) EditorService {
	return &editorService{store: store, listener: listener}
}

// ApplyEdits merges a sparse edit into the card. Present fields replace the
// stored value and absent fields are kept. Nothing is written when any field
// is rejected.
func (s *editorService) ApplyEdits(ctx context.Context, cardID uint64, edits *domain.CardEdits) (*domain.Card, error) {
	if edits == nil || edits.Empty() {
		card, err := loadActiveCard(ctx, s.store, cardID)
		if err != nil {
			return nil, common.Persistence(err)
		}
		return card, nil
	}

	var dueDate *time.Time
	if edits.DueDate != nil {
		parsed, err := parseDueDate(*edits.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = parsed
	}

	patches := edits.AttachmentPatches()
	for _, p := range patches {
		if p.URL == nil {
			continue
		}
		if err := common.ValidateAttachmentLink(*p.URL); err != nil {
			return nil, err
		}
	}

	var updated *domain.Card
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		card, err := loadActiveCard(ctx, tx, cardID)
		if err != nil {
			return err
		}

		var secondary *domain.Analyst
		if edits.SecondaryAnalystID != nil {
			secondary, err = resolveAnalyst(ctx, tx, *edits.SecondaryAnalystID)
			if err != nil {
				return err
			}
		}

		if len(patches) > 0 || secondary != nil {
			if err := tx.Cards().UpdateAttachmentsAndAssignment(ctx, card.ID, patches, secondary); err != nil {
				return err
			}
		}
		// an empty due_date clears it
		if edits.DueDate != nil {
			if err := tx.Cards().UpdateDueDate(ctx, card.ID, dueDate); err != nil {
				return err
			}
		}

		// 저장된 행 기준으로 반환
		updated, err = loadActiveCard(ctx, tx, card.ID)
		return err
	})
	if err != nil {
		return nil, common.Persistence(err)
	}

	pkglogger.GetLogger().Info().
		Uint64("card_id", cardID).
		Bool("attachments", edits.TouchesAttachments()).
		Bool("assignment", edits.SecondaryAnalystID != nil).
		Msg("card edited")

	notify(ctx, s.listener, domain.BoardChange{Action: domain.ChangeEdited, CardID: cardID, Stage: updated.Stage})
	return updated, nil
}

// SetSingleAttachment sets the URL of one slot and leaves everything else alone
func (s *editorService) SetSingleAttachment(ctx context.Context, cardID uint64, slot domain.AttachmentSlot, url string) (*domain.Card, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if err := common.ValidateAttachmentLink(url); err != nil {
		return nil, err
	}

	var updated *domain.Card
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		card, err := loadActiveCard(ctx, tx, cardID)
		if err != nil {
			return err
		}
		if err := tx.Cards().UpdateAttachmentSlot(ctx, card.ID, slot, url); err != nil {
			return err
		}

		current := card.Attachment(slot)
		current.URL = url
		card.SetAttachment(current)
		updated = card
		return nil
	})
	if err != nil {
		return nil, common.Persistence(err)
	}

	pkglogger.GetLogger().Info().
		Uint64("card_id", cardID).
		Str("slot", string(slot)).
		Msg("attachment saved")

	notify(ctx, s.listener, domain.BoardChange{Action: domain.ChangeEdited, CardID: cardID, Stage: updated.Stage})
	return updated, nil
}
