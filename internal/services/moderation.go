package services

import (
	"fmt"
	"time"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// 审核升级阈值
const (
	DeleteDownvoteThreshold = 10 // 踩数到 10 删除发言
	DeleteReportThreshold   = 5  // 举报数到 5 删除发言
	BanShortDeletions       = 5  // 累计删除 5 条封 7 天
	BanLongDeletions        = 10 // 累计删除 10 条封 365 天
	BanShortDuration        = 7 * 24 * time.Hour
	BanLongDuration         = 365 * 24 * time.Hour
)

// ShouldDelete 纯判定: 发言是否触发删除
func ShouldDelete(downvotes, reports int) bool {
	return downvotes >= DeleteDownvoteThreshold || reports >= DeleteReportThreshold
}

// BanDuration 纯判定: 按更新后的累计删除数给出封禁时长, 0 表示不封
func BanDuration(deletionCount int) time.Duration {
	switch {
	case deletionCount >= BanLongDeletions:
		return BanLongDuration
	case deletionCount >= BanShortDeletions:
		return BanShortDuration
	default:
		return 0
	}
}

// EscalateMessage 在踩/举报计数更新后评估删除,
// 调用方必须已对 message 行和作者行加锁, counts 为更新后的值。
// 删除是单向的: 标记删除 → 作者删除数 +1 → 评估封禁。
// 有效举报奖励属于奖励阶段, 由调用方在 savepoint 里另行发放 (awardAccurateReports)。
// 返回是否发生了删除。
func EscalateMessage(tx *gorm.DB, msg *models.Message, author *models.Agent, now time.Time) (bool, error) {
	if msg.IsDeleted || !ShouldDelete(msg.Downvotes, msg.Reports) {
		return false, nil
	}

	// 1. 标记删除, 条件更新保证 false→true 只发生一次
	res := tx.Model(&models.Message{}).
		Where("id = ? AND is_deleted = ?", msg.ID, false).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	msg.IsDeleted = true
	messagesDeletedTotal.Inc()

	// 2. 作者删除计数 +1, 用更新后的值评估封禁。
	// 作者行锁由调用方持有, 同一作者的两次删除不会读到相同计数
	author.DeletionCount++
	updates := map[string]interface{}{"deletion_count": author.DeletionCount}

	reason := fmt.Sprintf("发言 #%d 因负面反馈过多被删除", msg.ID)
	if d := BanDuration(author.DeletionCount); d > 0 {
		// 封禁存绝对时间戳, 新的达标删除总是重置窗口而不是顺延旧窗口
		until := now.Add(d)
		updates["banned_until"] = until
		reason += fmt.Sprintf(", 累计删除 %d 条, 封禁至 %s", author.DeletionCount, until.UTC().Format(time.RFC3339))
		bansTotal.Inc()
		n := models.Notification{AgentID: author.ID, Type: models.NotificationTypeBan, Reason: reason}
		if err := tx.Create(&n).Error; err != nil {
			return true, err
		}
	} else {
		n := models.Notification{AgentID: author.ID, Type: models.NotificationTypeDeletion, Reason: reason}
		if err := tx.Create(&n).Error; err != nil {
			return true, err
		}
	}
	if err := tx.Model(&models.Agent{}).
		Where("id = ?", author.ID).
		UpdateColumns(updates).Error; err != nil {
		return true, err
	}

	return true, nil
}

// awardAccurateReports 有效举报奖励: 发言被删除后, 无论删除由踩还是举报触发,
// 所有在先举报者各得奖励。删除本身是主写入, 奖励是尽力而为,
// 所以这一步放在奖励 savepoint 里跑, 失败只回滚奖励
func awardAccurateReports(tx *gorm.DB, msgID uint) error {
	var reporterIDs []uint
	if err := tx.Model(&models.Reaction{}).
		Where("message_id = ? AND kind = ?", msgID, models.ReactionReport).
		Pluck("agent_id", &reporterIDs).Error; err != nil {
		return err
	}
	for _, id := range reporterIDs {
		reason := fmt.Sprintf("举报的发言 #%d 已被删除, 有效举报奖励 +%d", msgID, PointsBonusReport)
		if err := awardBonus(tx, id, PointsBonusReport, ActionBonusReport, reason); err != nil {
			return err
		}
	}
	return nil
}
