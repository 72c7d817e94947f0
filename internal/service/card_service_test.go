package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("성공 - 기본값으로 생성", func(t *testing.T) {
		store := setupTestStore(t)
		listener := &recordingListener{}
		svc := NewCardService(store, listener).(*cardService)
		fixed := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
		svc.now = func() time.Time { return fixed }

		card, err := svc.Create(ctx, &domain.CreateCardRequest{
			StockName:          "  APPLE INC ",
			DueDate:            "2024-03-15",
			PrimaryAnalystID:   uint64Ptr(1),
			SecondaryAnalystID: uint64Ptr(2),
			Link1:              "https://attachment_link",
			Link1Name:          "Attachment",
		})
		require.NoError(t, err)

		assert.NotZero(t, card.ID)
		assert.Equal(t, "APPLE INC", card.StockName)
		assert.Equal(t, domain.StageIdeas, card.Stage)
		assert.Equal(t, domain.DefaultCardType, card.Type)
		assert.True(t, card.Active)
		assert.Equal(t, "2024-03-01", card.EntryDate.Format(dueDateLayout))
		require.NotNil(t, card.DueDate)
		assert.Equal(t, "2024-03-15", card.DueDate.Format(dueDateLayout))
		assert.Equal(t, "Joe Smith", card.AnalystName)
		assert.Equal(t, "Jarn Gore", card.SecondAnalystName)
		assert.Less(t, card.Sedol, int64(100_000_000))
		assert.Less(t, card.ISIN, int64(100_000_000))

		stored, err := svc.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://attachment_link", stored.Link1)
		assert.Equal(t, "Attachment", stored.Link1Name)
		assert.Equal(t, "Jarn Gore", stored.SecondAnalystName)

		assert.Equal(t, []domain.BoardChange{
			{Action: domain.ChangeCreated, CardID: card.ID, Stage: domain.StageIdeas},
		}, listener.Changes())
	})

	t.Run("성공 - 애널리스트 없이 생성", func(t *testing.T) {
		svc := NewCardService(setupTestStore(t), nil)

		card, err := svc.Create(ctx, &domain.CreateCardRequest{StockName: "NVIDIA", Type: "Special Situation"})
		require.NoError(t, err)
		assert.Equal(t, "Special Situation", card.Type)
		assert.Empty(t, card.AnalystName)
		assert.Nil(t, card.PrimaryAnalystID)
	})

	t.Run("실패 - 유효성 검사", func(t *testing.T) {
		tests := []struct {
			name string
			req  domain.CreateCardRequest
			want error
		}{
			{name: "empty stock name", req: domain.CreateCardRequest{StockName: "   "}, want: ErrStockNameRequired},
			{name: "unknown primary analyst", req: domain.CreateCardRequest{StockName: "A", PrimaryAnalystID: uint64Ptr(99)}, want: ErrUnknownAnalyst},
			{name: "unknown secondary analyst", req: domain.CreateCardRequest{StockName: "A", PrimaryAnalystID: uint64Ptr(1), SecondaryAnalystID: uint64Ptr(99)}, want: ErrUnknownAnalyst},
			{name: "malformed due date", req: domain.CreateCardRequest{StockName: "A", DueDate: "15/03/2024"}, want: ErrInvalidDueDate},
			{name: "script link", req: domain.CreateCardRequest{StockName: "A", Link3: "javascript:alert(1)"}, want: common.ErrValidation},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := setupTestStore(t)
				listener := &recordingListener{}
				svc := NewCardService(store, listener)

				req := tt.req
				_, err := svc.Create(ctx, &req)
				assert.ErrorIs(t, err, tt.want)
				assert.ErrorIs(t, err, common.ErrValidation)

				// 아무것도 저장되지 않아야 함
				count, err := store.Cards().CountActive(ctx)
				require.NoError(t, err)
				assert.Equal(t, int64(0), count)
				assert.Empty(t, listener.Changes())
			})
		}
	})

	t.Run("실패 - 저장소 오류", func(t *testing.T) {
		store := newMockStore()
		svc := NewCardService(store, nil)

		dbErr := errors.New("connection refused")
		store.cards.On("Create", mock.Anything, mock.AnythingOfType("*domain.Card")).Return(dbErr)

		_, err := svc.Create(ctx, &domain.CreateCardRequest{StockName: "APPLE INC"})
		assert.ErrorIs(t, err, common.ErrPersistence)
		assert.ErrorIs(t, err, dbErr)
		store.cards.AssertExpectations(t)
	})
}

func TestGetCard(t *testing.T) {
	ctx := context.Background()

	t.Run("실패 - 존재하지 않는 카드", func(t *testing.T) {
		svc := NewCardService(setupTestStore(t), nil)

		_, err := svc.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrCardNotFound)
		assert.Equal(t, 404, common.HTTPStatus(err))
	})

	t.Run("실패 - 저장소 오류", func(t *testing.T) {
		store := newMockStore()
		svc := NewCardService(store, nil)
		store.cards.On("FindByID", mock.Anything, uint64(1)).Return(nil, gorm.ErrInvalidDB)

		_, err := svc.GetByID(ctx, 1)
		assert.ErrorIs(t, err, common.ErrPersistence)
		assert.Equal(t, 500, common.HTTPStatus(err))
	})
}

func TestListByStage(t *testing.T) {
	ctx := context.Background()
	svc := NewCardService(setupTestStore(t), nil)

	first := createCard(t, svc, "APPLE INC")
	second := createCard(t, svc, "MICROSOFT")

	cards, err := svc.ListByStage(ctx, "ideas")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, second.ID, cards[0].ID)
	assert.Equal(t, first.ID, cards[1].ID)

	empty, err := svc.ListByStage(ctx, "Buy List")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.ListByStage(ctx, "Archive")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("성공 - 모든 스테이지에서 제외", func(t *testing.T) {
		store := setupTestStore(t)
		listener := &recordingListener{}
		svc := NewCardService(store, listener)
		card := createCard(t, svc, "APPLE INC")

		require.NoError(t, svc.SoftDelete(ctx, card.ID))

		for _, stage := range domain.Stages {
			cards, err := svc.ListByStage(ctx, string(stage))
			require.NoError(t, err)
			for _, c := range cards {
				assert.NotEqual(t, card.ID, c.ID, "stage %s", stage)
			}
		}

		// 비활성 카드도 ID로는 조회 가능
		stored, err := svc.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.False(t, stored.Active)

		changes := listener.Changes()
		require.Len(t, changes, 2)
		assert.Equal(t, domain.ChangeDeleted, changes[1].Action)
	})

	t.Run("성공 - 중복 삭제는 무시", func(t *testing.T) {
		listener := &recordingListener{}
		svc := NewCardService(setupTestStore(t), listener)
		card := createCard(t, svc, "APPLE INC")

		require.NoError(t, svc.SoftDelete(ctx, card.ID))
		require.NoError(t, svc.SoftDelete(ctx, card.ID))
		assert.Len(t, listener.Changes(), 2)
	})

	t.Run("실패 - 존재하지 않는 카드", func(t *testing.T) {
		svc := NewCardService(setupTestStore(t), nil)
		err := svc.SoftDelete(ctx, 404)
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestListAnalysts(t *testing.T) {
	svc := NewCardService(setupTestStore(t), nil)

	list, err := svc.ListAnalysts(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"Joe Smith", "Jarn Gore"}, names)
}

func TestPlaceholderIdentifiers(t *testing.T) {
	ts := time.Unix(1_700_000_000, 123_456_789)
	sedol, isin := placeholderIdentifiers(ts)
	assert.Equal(t, ts.UnixNano()%100_000_000, sedol)
	assert.Equal(t, (ts.UnixNano()/1_000)%100_000_000, isin)
}
