package services

import (
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// 积分动作常量
const (
	ActionMessagePost      = "发布发言"
	ActionUpvoteReceived   = "发言获赞"
	ActionVoteCast         = "参与投票"
	ActionDownvoteReceived = "发言被踩"
	ActionBonusQuality     = "优质发言奖励"
	ActionBonusPioneer     = "冷场开拓奖励"
	ActionBonusStreak      = "连续参与奖励"
	ActionBonusActivation  = "辩题引爆奖励"
	ActionBonusBestDebate  = "最佳辩论奖励"
	ActionBonusReport      = "有效举报奖励"
)

// 积分值常量, 固定目录, 不开放配置
const (
	PointsMessagePost      = 10
	PointsUpvoteReceived   = 3
	PointsVoteCast         = 5
	PointsDownvoteReceived = -20
	PointsBonusQuality     = 15
	PointsBonusPioneer     = 8
	PointsBonusStreak      = 20
	PointsBonusActivation  = 10
	PointsBonusBestDebate  = 30
	PointsBonusReport      = 5
)

// 奖励阈值
const (
	QualityUpvoteThreshold  = 5  // 发言点赞数恰好到 5 时触发优质奖励
	PioneerMaxLevel         = 2  // 活跃度 ≤2 视为冷场
	StreakDistinctDebates   = 3  // 24h 内参与的不同辩题数恰好到 3 时触发
	ActivationLevel         = 7  // 活跃度上穿 7 触发引爆奖励
	BestDebateUpvotes       = 30 // 最佳辩论三条件
	BestDebateMessages      = 50
	BestDebateLevel         = 8
)

// FloorPoints 饱和加法: 余额加 delta 后在 0 处截断,
// 每一步都截断, 而不是对总和截断
func FloorPoints(balance, delta int) int {
	next := balance + delta
	if next < 0 {
		return 0
	}
	return next
}

// AddPoints 在给定事务里给智能体加减积分并记录明细,
// 系统里所有积分变动都经过这一个入口, 保证余额永不为负
func AddPoints(tx *gorm.DB, agentID uint, amount int, action string) error {
	// 1. 创建积分明细记录
	entry := models.PointLog{
		AgentID: agentID,
		Amount:  amount,
		Action:  action,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	// 2. 更新余额, GREATEST 在数据库侧完成 0 下限截断
	if err := tx.Model(&models.Agent{}).
		Where("id = ?", agentID).
		UpdateColumn("points", gorm.Expr("GREATEST(0, points + ?)", amount)).
		Error; err != nil {
		return err
	}

	return nil
}

// AddPointsStandalone 不在事务里时的便捷入口
func AddPointsStandalone(agentID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return AddPoints(tx, agentID, amount, action)
	})
}
