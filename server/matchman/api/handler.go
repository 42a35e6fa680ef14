package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	commonlog "match_server/server/common/log"
	"match_server/server/matchman/service"
)

type Handler struct {
	chat    *service.ChatService
	matcher *service.SimilarityService
}

func NewHandler(chat *service.ChatService, matcher *service.SimilarityService) *Handler {
	return &Handler{chat: chat, matcher: matcher}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.root)
	r.POST("/chat", h.processChat)
	r.GET("/getMostSimilar/:user_id", h.getMostSimilar)
	r.GET("/user_messages/:user_id", h.getUserMessages)
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, NewMessageResponse("match_server is running"))
}

func (h *Handler) processChat(c *gin.Context) {
	var req struct {
		UserID  string `json:"user_id" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(err.Error()))
		return
	}

	llmResponse, err := h.chat.Chat(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		commonlog.Errorf("chat turn for user %s: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, NewChatResponse(req.UserID, req.Message, llmResponse))
}

func (h *Handler) getMostSimilar(c *gin.Context) {
	userID := c.Param("user_id")
	result, err := h.matcher.MostSimilar(c.Request.Context(), userID)
	if errors.Is(err, service.ErrNoMessages) {
		c.JSON(http.StatusOK, NewMessageResponse(MsgNoMessagesForUser))
		return
	}
	if errors.Is(err, service.ErrNoSimilarUsers) {
		c.JSON(http.StatusOK, NewMessageResponse(MsgNoSimilarUsers))
		return
	}
	if err != nil {
		commonlog.Errorf("most similar for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, NewMostSimilarResponse(result.UserID))
}

func (h *Handler) getUserMessages(c *gin.Context) {
	userID := c.Param("user_id")
	messages, err := h.chat.UserMessages(c.Request.Context(), userID)
	if err != nil {
		commonlog.Errorf("user messages for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return
	}
	if messages == nil {
		messages = []string{}
	}
	c.JSON(http.StatusOK, NewUserMessagesResponse(userID, messages))
}
