package service

import (
	"context"
	"errors"
	"time"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/Fahad602/Dash-KanBan/internal/repository"
	"github.com/Fahad602/Dash-KanBan/pkg/cache"
	pkglogger "github.com/Fahad602/Dash-KanBan/pkg/logger"
)

// BoardService 보드 뷰 모델 서비스
type BoardService interface {
	Stages() []domain.StageInfo
	BuildBoard(ctx context.Context, viewerID string) (*domain.Board, error)
	ToggleAttachments(ctx context.Context, viewerID string, cardID uint64) (bool, error)

	// BoardChanged invalidates the snapshot, collapses edited cards and
	// forwards the change to subscribers
	BoardChanged(ctx context.Context, change domain.BoardChange)
}

type boardService struct {
	store     repository.Store
	cache     cache.Service
	publisher ChangePublisher
	panels    *PanelState
	cacheTTL  time.Duration
}

// NewBoardService 생성자. cacheSvc and publisher may be nil.
func NewBoardService(store repository.Store, cacheSvc cache.Service, publisher ChangePublisher, cacheTTL time.Duration) BoardService {
	if cacheSvc == nil {
		cacheSvc = cache.NewService(nil)
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.TTLBoardView
	}
	return &boardService{
		store:     store,
		cache:     cacheSvc,
		publisher: publisher,
		panels:    NewPanelState(),
		cacheTTL:  cacheTTL,
	}
}

// Stages returns the nine stage columns with their drop-zone ids
func (s *boardService) Stages() []domain.StageInfo {
	infos := make([]domain.StageInfo, 0, len(domain.Stages))
	for i, stage := range domain.Stages {
		infos = append(infos, domain.StageInfo{Name: stage, ZoneID: stage.ZoneID(), Order: i + 1})
	}
	return infos
}

// BuildBoard returns the nine columns in display order with the viewer's panel state applied
func (s *boardService) BuildBoard(ctx context.Context, viewerID string) (*domain.Board, error) {
	columns, err := s.loadColumns(ctx)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{Columns: make([]domain.Column, len(columns))}
	for i, col := range columns {
		rows := make([]domain.CardRow, len(col.Cards))
		for j, row := range col.Cards {
			row.Expanded = s.panels.Expanded(viewerID, row.ID)
			rows[j] = row
		}
		board.Columns[i] = domain.Column{Stage: col.Stage, ZoneID: col.ZoneID, Cards: rows}
	}
	return board, nil
}

// boardSnapshot is the cached stage partition tagged with the cache
// generation it was read under
type boardSnapshot struct {
	Generation int64           `json:"generation"`
	Columns    []domain.Column `json:"columns"`
}

// loadColumns reads the stage partition from the snapshot cache or the store.
// The generation is read before the store so a build that races a mutation
// writes a snapshot no later reader accepts.
func (s *boardService) loadColumns(ctx context.Context) ([]domain.Column, error) {
	gen, genErr := s.cache.BoardGeneration(ctx)
	if genErr != nil {
		pkglogger.GetLogger().Warn().Err(genErr).Msg("board cache generation read failed")
	} else {
		var cached boardSnapshot
		err := s.cache.GetBoardView(ctx, &cached)
		if err == nil && cached.Generation == gen && len(cached.Columns) == len(domain.Stages) {
			return cached.Columns, nil
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			pkglogger.GetLogger().Warn().Err(err).Msg("board cache read failed")
		}
	}

	columns := make([]domain.Column, 0, len(domain.Stages))
	for _, stage := range domain.Stages {
		cards, err := s.store.Cards().ListByStage(ctx, stage)
		if err != nil {
			return nil, common.Persistence(err)
		}
		rows := make([]domain.CardRow, 0, len(cards))
		for _, card := range cards {
			rows = append(rows, domain.NewCardRow(card))
		}
		columns = append(columns, domain.Column{Stage: stage, ZoneID: stage.ZoneID(), Cards: rows})
	}

	if genErr == nil {
		snapshot := boardSnapshot{Generation: gen, Columns: columns}
		if err := s.cache.SetBoardView(ctx, snapshot, s.cacheTTL); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("board cache write failed")
		}
	}
	return columns, nil
}

// ToggleAttachments flips the viewer's attachment panel of an active card
func (s *boardService) ToggleAttachments(ctx context.Context, viewerID string, cardID uint64) (bool, error) {
	if _, err := loadActiveCard(ctx, s.store, cardID); err != nil {
		return false, common.Persistence(err)
	}
	return s.panels.Toggle(viewerID, cardID), nil
}

// BoardChanged implements ChangeListener
func (s *boardService) BoardChanged(ctx context.Context, change domain.BoardChange) {
	if err := s.cache.InvalidateBoardView(ctx); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("board cache invalidation failed")
	}

	switch change.Action {
	case domain.ChangeEdited, domain.ChangeDeleted:
		s.panels.Collapse(change.CardID)
	}

	if s.publisher != nil {
		s.publisher.PublishChange(ctx, change)
	}
}
