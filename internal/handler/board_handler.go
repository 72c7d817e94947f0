package handler

import (
	"net/http"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/Fahad602/Dash-KanBan/internal/middleware"
	"github.com/Fahad602/Dash-KanBan/internal/service"
	"github.com/gin-gonic/gin"
)

// BoardHandler serves the board view and drag-and-drop events
type BoardHandler struct {
	board       service.BoardService
	cards       service.CardService
	transitions service.TransitionService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(board service.BoardService, cards service.CardService, transitions service.TransitionService) *BoardHandler {
	return &BoardHandler{board: board, cards: cards, transitions: transitions}
}

// ListStages - 스테이지 목록 (GET /api/v1/stages)
func (h *BoardHandler) ListStages(c *gin.Context) {
	stages := h.board.Stages()
	common.SuccessResponse(c, stages, &common.Meta{Total: int64(len(stages))})
}

// ListAnalysts - 애널리스트 목록 (GET /api/v1/analysts)
func (h *BoardHandler) ListAnalysts(c *gin.Context) {
	analysts, err := h.cards.ListAnalysts(c.Request.Context())
	if err != nil {
		common.FailWith(c, "Failed to fetch analysts", err)
		return
	}
	common.SuccessResponse(c, analysts, &common.Meta{Total: int64(len(analysts))})
}

// GetBoard - 보드 조회 (GET /api/v1/board)
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, err := h.board.BuildBoard(c.Request.Context(), middleware.GetViewerID(c))
	if err != nil {
		common.FailWith(c, "Failed to build board", err)
		return
	}
	common.SuccessResponse(c, board, &common.Meta{Total: int64(len(board.CardIDs()))})
}

// ListStageCards - 스테이지별 카드 목록 (GET /api/v1/stages/:stage/cards)
func (h *BoardHandler) ListStageCards(c *gin.Context) {
	stageName := c.Param("stage")
	if stage, ok := domain.StageForZone(stageName); ok {
		stageName = string(stage)
	}

	cards, err := h.cards.ListByStage(c.Request.Context(), stageName)
	if err != nil {
		common.FailWith(c, "Failed to fetch cards", err)
		return
	}

	rows := make([]domain.CardRow, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, domain.NewCardRow(card))
	}
	stage, _ := domain.ParseStage(stageName)
	common.SuccessResponse(c, rows, &common.Meta{Stage: string(stage), Total: int64(len(rows))})
}

// Drop - 드래그 앤 드롭 완료 이벤트 (POST /api/v1/board/drop)
func (h *BoardHandler) Drop(c *gin.Context) {
	var ev domain.DropEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid drop event", err)
		return
	}

	result, err := h.transitions.HandleDrop(c.Request.Context(), &ev)
	if err != nil {
		common.FailWith(c, "Failed to move card", err)
		return
	}
	common.SuccessResponse(c, result, nil)
}
