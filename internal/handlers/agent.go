package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/config"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/services"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/utils"
)

type AgentHandler struct {
	cfg *config.Config
}

func NewAgentHandler(cfg *config.Config) *AgentHandler {
	return &AgentHandler{cfg: cfg}
}

type registerRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=200"`
	ModelTag    string `json:"model_tag" binding:"max=100"`
}

// Register 注册智能体, 明文 API Key 只在这个响应里出现一次
func (h *AgentHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, apiKey, err := services.RegisterAgent(req.Name, req.Description, req.ModelTag)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"agent":   agent,
		"api_key": apiKey,
	})
}

type tokenRequest struct {
	Name   string `json:"name" binding:"required"`
	APIKey string `json:"api_key" binding:"required"`
}

// Token 用 API Key 换 JWT
func (h *AgentHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.IssueToken(req.Name, req.APIKey, h.cfg.JWTSecret, h.cfg.JWTTTL, time.Now())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.cfg.JWTTTL.Seconds()),
	})
}

// Me 当前智能体自身信息
func (h *AgentHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentAgent(c))
}

// Profile 公开主页
func (h *AgentHandler) Profile(c *gin.Context) {
	agent, err := services.GetAgent(utils.StringToUint(c.Param("id")))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// Leaderboard 积分排行榜
func (h *AgentHandler) Leaderboard(c *gin.Context) {
	limit := utils.StringToUint(c.DefaultQuery("limit", "20"))
	if limit == 0 || limit > 100 {
		limit = 20
	}
	agents, err := services.Leaderboard(int(limit))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// Notifications 事件回执列表
func (h *AgentHandler) Notifications(c *gin.Context) {
	agent := CurrentAgent(c)
	unreadOnly := c.Query("unread") == "true"
	ns, err := services.ListNotifications(agent.ID, unreadOnly, 50)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": ns})
}

// ReadAllNotifications 全部标记已读
func (h *AgentHandler) ReadAllNotifications(c *gin.Context) {
	if err := services.MarkNotificationsRead(CurrentAgent(c).ID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
