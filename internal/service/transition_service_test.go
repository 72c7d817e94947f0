package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMoveCard(t *testing.T) {
	ctx := context.Background()

	t.Run("성공 - 스테이지 이동과 로그 기록", func(t *testing.T) {
		store := setupTestStore(t)
		listener := &recordingListener{}
		cards := NewCardService(store, nil)
		svc := NewTransitionService(store, listener)
		card := createCard(t, cards, "APPLE INC")

		result, err := svc.MoveCard(ctx, card.ID, domain.StageModel)
		require.NoError(t, err)
		assert.True(t, result.Moved)
		assert.Equal(t, domain.StageModel, result.Card.Stage)
		require.NotNil(t, result.Log)
		assert.Equal(t, domain.StageIdeas, result.Log.OldStage)
		assert.Equal(t, domain.StageModel, result.Log.NewStage)
		assert.False(t, result.Log.Timestamp.IsZero())

		stored, err := cards.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StageModel, stored.Stage)
		assert.Equal(t, card.EntryDate.Format(dueDateLayout), stored.EntryDate.Format(dueDateLayout))

		assert.Equal(t, []domain.BoardChange{
			{Action: domain.ChangeMoved, CardID: card.ID, Stage: domain.StageModel},
		}, listener.Changes())
	})

	t.Run("성공 - 같은 스테이지 이동은 무시", func(t *testing.T) {
		store := setupTestStore(t)
		listener := &recordingListener{}
		cards := NewCardService(store, nil)
		svc := NewTransitionService(store, listener)
		card := createCard(t, cards, "APPLE INC")

		result, err := svc.MoveCard(ctx, card.ID, domain.StageIdeas)
		require.NoError(t, err)
		assert.False(t, result.Moved)
		assert.Nil(t, result.Log)

		count, err := store.Transitions().CountByCard(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
		assert.Empty(t, listener.Changes())
	})

	t.Run("실패 - 알 수 없는 스테이지", func(t *testing.T) {
		store := setupTestStore(t)
		card := createCard(t, NewCardService(store, nil), "APPLE INC")
		svc := NewTransitionService(store, nil)

		_, err := svc.MoveCard(ctx, card.ID, domain.Stage("Archive"))
		assert.ErrorIs(t, err, ErrInvalidStage)
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("실패 - 삭제된 카드", func(t *testing.T) {
		store := setupTestStore(t)
		cards := NewCardService(store, nil)
		svc := NewTransitionService(store, nil)
		card := createCard(t, cards, "APPLE INC")
		require.NoError(t, cards.SoftDelete(ctx, card.ID))

		_, err := svc.MoveCard(ctx, card.ID, domain.StageModel)
		assert.ErrorIs(t, err, ErrCardNotFound)

		_, err = svc.MoveCard(ctx, 404, domain.StageModel)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("실패 - 로그 기록 오류", func(t *testing.T) {
		store := newMockStore()
		listener := &recordingListener{}
		svc := NewTransitionService(store, listener)

		card := &domain.Card{ID: 7, Stage: domain.StageIdeas, Active: true}
		dbErr := errors.New("disk full")
		store.cards.On("FindByID", mock.Anything, uint64(7)).Return(card, nil)
		store.cards.On("UpdateStage", mock.Anything, uint64(7), domain.StageShortNote).Return(nil)
		store.transitions.On("Create", mock.Anything, mock.AnythingOfType("*domain.StageTransitionLog")).Return(dbErr)

		result, err := svc.MoveCard(ctx, 7, domain.StageShortNote)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, common.ErrPersistence)
		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, listener.Changes())
		store.cards.AssertExpectations(t)
		store.transitions.AssertExpectations(t)
	})

	t.Run("실패 - 로그 기록 오류 시 스테이지 롤백", func(t *testing.T) {
		base := setupTestStore(t)
		cards := NewCardService(base, nil)
		card := createCard(t, cards, "APPLE INC")

		listener := &recordingListener{}
		svc := NewTransitionService(&failingLogStore{Store: base}, listener)

		result, err := svc.MoveCard(ctx, card.ID, domain.StageShortNote)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, common.ErrPersistence)
		assert.ErrorIs(t, err, errLogWrite)
		assert.Empty(t, listener.Changes())

		stored, err := base.Cards().FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StageIdeas, stored.Stage)

		count, err := base.Transitions().CountByCard(ctx, card.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestAuditCompleteness(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	cards := NewCardService(store, nil)
	svc := NewTransitionService(store, nil)
	card := createCard(t, cards, "APPLE INC")

	moves := []domain.Stage{
		domain.StageCorrectionOfErrors,
		domain.StageCorrectionOfErrors, // no-op
		domain.StageShortNote,
		domain.StageQA,
		domain.StageQA, // no-op
		domain.StageIdeas,
		domain.StageBuyList,
	}

	effective := 0
	for _, target := range moves {
		result, err := svc.MoveCard(ctx, card.ID, target)
		require.NoError(t, err)
		if result.Moved {
			effective++
		}
	}
	assert.Equal(t, 5, effective)

	logs, err := cards.History(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, logs, effective)

	// 로그는 연속된 체인을 이뤄야 함
	prev := domain.StageIdeas
	for _, entry := range logs {
		assert.Equal(t, prev, entry.OldStage)
		assert.NotEqual(t, entry.OldStage, entry.NewStage)
		prev = entry.NewStage
	}

	stored, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Stage, logs[len(logs)-1].NewStage)
}

func TestHandleDrop(t *testing.T) {
	ctx := context.Background()

	t.Run("성공 - 존 ID로 이동", func(t *testing.T) {
		store := setupTestStore(t)
		cards := NewCardService(store, nil)
		svc := NewTransitionService(store, nil)
		card := createCard(t, cards, "APPLE INC")

		result, err := svc.HandleDrop(ctx, &domain.DropEvent{
			SourceZone:    "drag_container1",
			TargetZone:    "drag_container5",
			DraggedCardID: card.ID,
		})
		require.NoError(t, err)
		assert.True(t, result.Moved)
		assert.Equal(t, domain.StageModel, result.Card.Stage)
	})

	t.Run("성공 - 알 수 없는 존은 무시", func(t *testing.T) {
		store := setupTestStore(t)
		cards := NewCardService(store, nil)
		svc := NewTransitionService(store, nil)
		card := createCard(t, cards, "APPLE INC")

		for _, zone := range []string{"drag_container0", "drag_container10", "trash", ""} {
			result, err := svc.HandleDrop(ctx, &domain.DropEvent{TargetZone: zone, DraggedCardID: card.ID})
			require.NoError(t, err, zone)
			assert.False(t, result.Moved, zone)
		}

		stored, err := cards.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StageIdeas, stored.Stage)
	})

	t.Run("성공 - 출발 존 불일치는 기록만", func(t *testing.T) {
		store := setupTestStore(t)
		cards := NewCardService(store, nil)
		svc := NewTransitionService(store, nil)
		card := createCard(t, cards, "APPLE INC")

		result, err := svc.HandleDrop(ctx, &domain.DropEvent{
			SourceZone:    "drag_container3",
			TargetZone:    "drag_container9",
			DraggedCardID: card.ID,
		})
		require.NoError(t, err)
		assert.True(t, result.Moved)
		assert.Equal(t, domain.StageIdeas, result.Log.OldStage)
		assert.Equal(t, domain.StageFailList, result.Log.NewStage)
	})

	t.Run("실패 - 존재하지 않는 카드", func(t *testing.T) {
		svc := NewTransitionService(setupTestStore(t), nil)
		_, err := svc.HandleDrop(ctx, &domain.DropEvent{TargetZone: "drag_container2", DraggedCardID: 404})
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}
