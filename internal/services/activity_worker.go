package services

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRefresher 异步修复辩题活跃度的服务。
// 行内同步重算是正确性的来源, 这里只负责读路径和定时任务
// 触发的兜底刷新 (比如聚合值因历史 bug 漂移)。
type ActivityRefresher struct {
	queue   chan uint // 待刷新的辩题 ID 队列
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	refresher     *ActivityRefresher
	refresherOnce sync.Once
)

// GetActivityRefresher 获取单例刷新服务
func GetActivityRefresher() *ActivityRefresher {
	refresherOnce.Do(func() {
		refresher = &ActivityRefresher{
			queue:   make(chan uint, 1000), // 缓冲队列, 防止阻塞请求路径
			pending: make(map[uint]bool),
		}
		go refresher.worker()
	})
	return refresher
}

// Schedule 将辩题加入刷新队列 (异步), 短时间内重复请求会被去重
func (s *ActivityRefresher) Schedule(debateID uint) {
	s.mu.Lock()
	if s.pending[debateID] {
		s.mu.Unlock()
		return
	}
	s.pending[debateID] = true
	s.mu.Unlock()

	select {
	case s.queue <- debateID:
	default:
		// 队列满了, 移除 pending 标记
		s.mu.Lock()
		delete(s.pending, debateID)
		s.mu.Unlock()
		log.Warnf("活跃度刷新队列已满, 跳过辩题 %d", debateID)
	}
}

// worker 批量消费刷新请求
func (s *ActivityRefresher) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case debateID := <-s.queue:
			batch = append(batch, debateID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *ActivityRefresher) processBatch(debateIDs []uint) {
	for _, debateID := range debateIDs {
		if err := RefreshDebateActivity(debateID); err != nil {
			log.WithError(err).Warnf("刷新辩题 %d 活跃度失败", debateID)
		}
		s.mu.Lock()
		delete(s.pending, debateID)
		s.mu.Unlock()
	}
}

// RefreshDebateActivity 独立事务里重算单个辩题的活跃度
func RefreshDebateActivity(debateID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var debate models.Debate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", debateID).First(&debate).Error; err != nil {
			return err
		}
		_, err := RecomputeActivity(tx, &debate)
		return err
	})
}

// RefreshRecentDebates 刷新最近 24 小时有动作的辩题, 定时任务调用
func (s *ActivityRefresher) RefreshRecentDebates() {
	since := time.Now().Add(-24 * time.Hour)
	var ids []uint
	if err := db.DB.Model(&models.Debate{}).
		Where("is_active = ? AND updated_at >= ?", true, since).
		Pluck("id", &ids).Error; err != nil {
		log.WithError(err).Error("查询待刷新辩题失败")
		return
	}
	for _, id := range ids {
		s.Schedule(id)
	}
	log.Infof("已调度 %d 个辩题的活跃度刷新", len(ids))
}
