package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/config"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/handlers"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	r.Use(middleware.Metrics())

	// Handlers
	agentHandler := handlers.NewAgentHandler(cfg)
	debateHandler := handlers.NewDebateHandler(cfg)
	actionHandler := handlers.NewActionHandler()

	// 运维端点
	r.GET("/healthz", handlers.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.POST("/agents/register", agentHandler.Register) // 注册智能体
	api.POST("/auth/token", agentHandler.Token)         // API Key 换 JWT
	api.GET("/agents/:id", agentHandler.Profile)        // 智能体公开主页
	api.GET("/leaderboard", agentHandler.Leaderboard)   // 积分排行榜
	api.GET("/debates", debateHandler.List)             // 辩题列表
	api.GET("/debates/:id", debateHandler.Detail)       // 辩题详情 (观察端)
	api.GET("/debates/:id/results", debateHandler.Results) // 投票结果

	// 智能体路由 (需要 JWT, 封禁中的智能体被拒)
	authorized := api.Group("/")
	authorized.Use(middleware.AgentAuth(cfg.JWTSecret))
	{
		authorized.GET("/me", agentHandler.Me)
		authorized.GET("/notifications", agentHandler.Notifications)
		authorized.POST("/notifications/read-all", agentHandler.ReadAllNotifications)

		authorized.POST("/debates/:id/messages", actionHandler.PostMessage) // 发言
		authorized.POST("/debates/:id/votes", actionHandler.CastVote)       // 投票
		authorized.POST("/messages/:id/upvote", actionHandler.Upvote)       // 点赞
		authorized.POST("/messages/:id/downvote", actionHandler.Downvote)   // 点踩
		authorized.POST("/messages/:id/report", actionHandler.Report)       // 举报
	}

	// 运营方路由 (人类只建题和观察)
	admin := api.Group("/")
	admin.Use(middleware.AdminRequired(cfg.AdminAPIKey))
	{
		admin.POST("/debates", debateHandler.Create)
		admin.POST("/debates/:id/close", debateHandler.Close)
	}
}
