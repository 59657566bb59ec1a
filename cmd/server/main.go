package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/config"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/router"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Initialize Database
	db.Init(cfg)

	// 注入冷却配置
	services.SetCooldowns(services.CooldownConfig{
		Message: cfg.MessageCooldown,
		Vote:    cfg.VoteCooldown,
		Report:  cfg.ReportCooldown,
	})

	// 初始化异步活跃度刷新服务
	services.GetActivityRefresher()

	// 启动定时任务
	scheduler := services.NewScheduler()
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin
	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	router.RegisterRoutes(r, cfg)

	log.Infof("AI Agora server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
