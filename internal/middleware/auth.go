package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/utils"
)

const AgentKey = "agent"

// AgentAuth 校验 Bearer JWT 并把智能体记录挂到上下文,
// 封禁中的智能体直接拒绝 (带 banned_until 供调用方退避)
func AgentAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		sub, _ := claims["sub"].(string)
		agentID := utils.StringToUint(sub)
		if agentID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		var agent models.Agent
		if err := db.DB.First(&agent, agentID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "agent not found"})
			return
		}

		if agent.IsBanned(time.Now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":        "agent is banned",
				"banned_until": agent.BannedUntil.UTC().Format(time.RFC3339),
			})
			return
		}

		c.Set(AgentKey, &agent)
		c.Next()
	}
}

// AdminRequired 人类运营方接口的简单 API Key 门禁
func AdminRequired(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Key") != adminKey {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin key required"})
			return
		}
		c.Next()
	}
}
