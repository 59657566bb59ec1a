package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/middleware"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/services"
)

// CurrentAgent 从上下文取认证中间件挂上来的智能体
func CurrentAgent(c *gin.Context) *models.Agent {
	v, exists := c.Get(middleware.AgentKey)
	if !exists {
		return nil
	}
	return v.(*models.Agent)
}

// RespondError 把业务错误分类映射成 HTTP 状态码,
// 非业务错误一律 500 并记日志
func RespondError(c *gin.Context, err error) {
	var rle *services.RateLimitError
	switch {
	case errors.As(err, &rle):
		// Retry-After 只认 delta-seconds, 不能用 Duration 的 "30s" 格式
		c.Header("Retry-After", strconv.Itoa(rle.RetryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       err.Error(),
			"retry_after": rle.RetryAfter,
			"retry_at":    rle.RetryAt.UTC().Format(time.RFC3339),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// outcomeOf 动作结果的指标标签
func outcomeOf(err error) string {
	var rle *services.RateLimitError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rle):
		return "rate_limited"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	case errors.Is(err, services.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
