package services

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler 管理后台定时任务: 过期辩题关闭和活跃度兜底刷新
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler 创建定时任务调度器, 全部任务按 UTC 跑
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithLocation(time.UTC))}
}

// Start 注册并启动全部定时任务
func (s *Scheduler) Start() {
	// 每 10 分钟关闭过期辩题
	s.cron.AddFunc("*/10 * * * *", func() {
		if _, err := CloseExpiredDebates(time.Now()); err != nil {
			log.WithError(err).Error("[CRON] 关闭过期辩题失败")
		}
	})

	// 每小时兜底刷新近期活跃辩题的派生活跃度
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] 活跃度兜底刷新")
		GetActivityRefresher().RefreshRecentDebates()
	})

	s.cron.Start()
	log.Info("定时任务调度器已启动 (UTC)")
}

// Stop 优雅停止, 等待执行中的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("定时任务调度器已停止")
}
