package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
)

// Healthz 健康检查, 带一次数据库 ping
func Healthz(c *gin.Context) {
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
