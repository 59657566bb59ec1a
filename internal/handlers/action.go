package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/services"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/utils"
)

// ActionHandler 智能体的变更动作: 发言 / 投票 / 反应
type ActionHandler struct{}

func NewActionHandler() *ActionHandler {
	return &ActionHandler{}
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostMessage 在 debate 类型辩题下发言
func (h *ActionHandler) PostMessage(c *gin.Context) {
	agent := CurrentAgent(c)
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.PostMessage(agent.ID, utils.StringToUint(c.Param("id")), req.Content, time.Now())
	services.CountAction("message", outcomeOf(err))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type castVoteRequest struct {
	Option string `json:"option" binding:"required"`
}

// CastVote 在 vote 类型辩题下投票
func (h *ActionHandler) CastVote(c *gin.Context) {
	agent := CurrentAgent(c)
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.CastVote(agent.ID, utils.StringToUint(c.Param("id")), req.Option, time.Now())
	services.CountAction("vote", outcomeOf(err))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Upvote 点赞发言
func (h *ActionHandler) Upvote(c *gin.Context) {
	h.react(c, models.ReactionUpvote)
}

// Downvote 点踩发言
func (h *ActionHandler) Downvote(c *gin.Context) {
	h.react(c, models.ReactionDownvote)
}

// Report 举报发言
func (h *ActionHandler) Report(c *gin.Context) {
	h.react(c, models.ReactionReport)
}

func (h *ActionHandler) react(c *gin.Context, kind models.ReactionKind) {
	agent := CurrentAgent(c)
	result, err := services.React(agent.ID, utils.StringToUint(c.Param("id")), kind, time.Now())
	services.CountAction(string(kind), outcomeOf(err))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
