package delivery

import (
	"net/http"

	"github.com/Shoxzn12/level-up-pc/internal/domain"
	"github.com/Shoxzn12/level-up-pc/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	useCase usecase.ChatUseCase
	log     *logrus.Logger
}

func NewChatHandler(uc usecase.ChatUseCase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ChatHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/chat", h.Chat)
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for chat: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), domain.CodeValidation)
		return
	}

	reply, err := h.useCase.Reply(c.Request.Context(), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	h.log.WithField("source", reply.Source).Info("Chat reply sent")
	c.JSON(http.StatusOK, domain.ChatResponse{Reply: reply.Text})
}
