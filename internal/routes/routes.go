package routes

import (
	"github.com/Fahad602/Dash-KanBan/internal/handler"
	"github.com/Fahad602/Dash-KanBan/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	boardHandler *handler.BoardHandler,
	cardHandler *handler.CardHandler,
	wsHandler *handler.WSHandler,
) {
	api := router.Group("/api/v1", middleware.Viewer())

	// Board (보드 조회 및 드래그 앤 드롭)
	api.GET("/stages", boardHandler.ListStages)
	api.GET("/stages/:stage/cards", boardHandler.ListStageCards)
	api.GET("/analysts", boardHandler.ListAnalysts)
	api.GET("/board", boardHandler.GetBoard)
	api.POST("/board/drop", boardHandler.Drop)

	// Cards
	cards := api.Group("/cards")
	{
		cards.POST("", cardHandler.CreateCard)
		cards.GET("/:id", cardHandler.GetCard)
		cards.PATCH("/:id", cardHandler.UpdateCard)
		cards.DELETE("/:id", cardHandler.DeleteCard)
		cards.POST("/:id/move", cardHandler.MoveCard)
		cards.GET("/:id/transitions", cardHandler.ListTransitions)

		// 첨부 패널
		cards.PUT("/:id/attachments/:slot", cardHandler.SetAttachment)
		cards.POST("/:id/attachments/toggle", cardHandler.ToggleAttachments)
	}

	// WebSocket (보드 변경 알림)
	router.GET("/ws/board", middleware.Viewer(), wsHandler.Connect)
}
