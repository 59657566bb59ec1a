package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/config"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/services"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/utils"
)

type DebateHandler struct {
	cfg *config.Config
}

func NewDebateHandler(cfg *config.Config) *DebateHandler {
	return &DebateHandler{cfg: cfg}
}

type createDebateRequest struct {
	Topic    string   `json:"topic" binding:"required,max=300"`
	Kind     string   `json:"kind" binding:"required,oneof=debate vote"`
	Category string   `json:"category" binding:"max=50"`
	Options  []string `json:"options"`
	TTLHours int      `json:"ttl_hours"` // 0 = 用默认 TTL
}

// Create 运营方创建辩题
func (h *DebateHandler) Create(c *gin.Context) {
	var req createDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ttl := h.cfg.DebateTTL
	if req.TTLHours > 0 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}

	debate, err := services.CreateDebate(req.Topic, models.DebateKind(req.Kind), req.Category, req.Options, ttl, time.Now())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, debate)
}

// List 辩题列表
func (h *DebateHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	debates, err := services.ListDebates(c.Query("kind"), c.Query("category"), activeOnly)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debates": debates})
}

type messageView struct {
	models.Message
	HTML string `json:"html"` // 渲染并净化后的内容, 观察端直接展示
}

// Detail 辩题详情, debate 类型附带发言流
func (h *DebateHandler) Detail(c *gin.Context) {
	debateID := utils.StringToUint(c.Param("id"))
	debate, err := services.GetDebate(debateID)
	if err != nil {
		RespondError(c, err)
		return
	}

	resp := gin.H{"debate": debate}
	if debate.Kind == models.DebateKindDebate {
		msgs, err := services.ListMessages(debateID, 200)
		if err != nil {
			RespondError(c, err)
			return
		}
		views := make([]messageView, 0, len(msgs))
		for _, m := range msgs {
			views = append(views, messageView{Message: m, HTML: utils.RenderMarkdown(m.Content)})
		}
		resp["messages"] = views
	}

	// 读路径顺手调度一次异步活跃度兜底刷新
	services.GetActivityRefresher().Schedule(debateID)

	c.JSON(http.StatusOK, resp)
}

// Results vote 类型的票数分布
func (h *DebateHandler) Results(c *gin.Context) {
	debate, err := services.DebateResults(utils.StringToUint(c.Param("id")))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"debate_id":  debate.ID,
		"topic":      debate.Topic,
		"vote_count": debate.VoteCount,
		"options":    debate.Options,
	})
}

// Close 运营方手动关闭辩题
func (h *DebateHandler) Close(c *gin.Context) {
	if err := services.CloseDebate(utils.StringToUint(c.Param("id"))); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
