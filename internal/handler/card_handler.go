package handler

import (
	"net/http"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/Fahad602/Dash-KanBan/internal/domain"
	"github.com/Fahad602/Dash-KanBan/internal/middleware"
	"github.com/Fahad602/Dash-KanBan/internal/service"
	"github.com/gin-gonic/gin"
)

// CardHandler serves card forms and actions
type CardHandler struct {
	cards       service.CardService
	transitions service.TransitionService
	editor      service.EditorService
	board       service.BoardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cards service.CardService, transitions service.TransitionService, editor service.EditorService, board service.BoardService) *CardHandler {
	return &CardHandler{cards: cards, transitions: transitions, editor: editor, board: board}
}

// CreateCard - 카드 생성 (POST /api/v1/cards)
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req domain.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	card, err := h.cards.Create(c.Request.Context(), &req)
	if err != nil {
		common.FailWith(c, "Failed to create card", err)
		return
	}
	common.CreatedResponse(c, card)
}

// GetCard - 카드 조회 (GET /api/v1/cards/:id)
func (h *CardHandler) GetCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	card, err := h.cards.GetByID(c.Request.Context(), id)
	if err != nil {
		common.FailWith(c, "Card not found", err)
		return
	}
	common.SuccessResponse(c, card, nil)
}

// UpdateCard - 카드 첨부/담당자 수정 (PATCH /api/v1/cards/:id)
func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var edits domain.CardEdits
	if err := c.ShouldBindJSON(&edits); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	card, err := h.editor.ApplyEdits(c.Request.Context(), id, &edits)
	if err != nil {
		common.FailWith(c, "Failed to update card", err)
		return
	}
	common.SuccessResponse(c, card, nil)
}

// DeleteCard - 카드 삭제 (DELETE /api/v1/cards/:id)
func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	if err := h.cards.SoftDelete(c.Request.Context(), id); err != nil {
		common.FailWith(c, "Failed to delete card", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveCard - 카드 스테이지 이동 (POST /api/v1/cards/:id/move)
func (h *CardHandler) MoveCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req domain.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	target, ok := domain.ParseStage(req.TargetStage)
	if !ok {
		common.FailWith(c, "Unknown stage", service.ErrInvalidStage)
		return
	}

	result, err := h.transitions.MoveCard(c.Request.Context(), id, target)
	if err != nil {
		common.FailWith(c, "Failed to move card", err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// SetAttachment - 단일 첨부 저장 (PUT /api/v1/cards/:id/attachments/:slot)
func (h *CardHandler) SetAttachment(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req domain.SetAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	card, err := h.editor.SetSingleAttachment(c.Request.Context(), id, domain.AttachmentSlot(c.Param("slot")), req.URL)
	if err != nil {
		common.FailWith(c, "Failed to save attachment", err)
		return
	}
	common.SuccessResponse(c, card, nil)
}

// ToggleAttachments - 첨부 패널 토글 (POST /api/v1/cards/:id/attachments/toggle)
func (h *CardHandler) ToggleAttachments(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	expanded, err := h.board.ToggleAttachments(c.Request.Context(), middleware.GetViewerID(c), id)
	if err != nil {
		common.FailWith(c, "Failed to toggle attachments", err)
		return
	}
	common.SuccessResponse(c, gin.H{"card_id": id, "expanded": expanded}, nil)
}

// ListTransitions - 스테이지 이동 이력 (GET /api/v1/cards/:id/transitions)
func (h *CardHandler) ListTransitions(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	logs, err := h.cards.History(c.Request.Context(), id)
	if err != nil {
		common.FailWith(c, "Failed to fetch transitions", err)
		return
	}
	common.SuccessResponse(c, logs, &common.Meta{Total: int64(len(logs))})
}
