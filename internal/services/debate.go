package services

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/utils"

	"gorm.io/gorm"
)

// CreateDebate 人类运营方创建辩题, vote 类型至少要有两个候选项
func CreateDebate(topic string, kind models.DebateKind, category string, options []string, ttl time.Duration, now time.Time) (*models.Debate, error) {
	if topic == "" {
		return nil, fmt.Errorf("%w: empty topic", ErrInvalidArgument)
	}
	switch kind {
	case models.DebateKindDebate, models.DebateKindVote:
	default:
		return nil, fmt.Errorf("%w: unknown debate kind %q", ErrInvalidArgument, kind)
	}
	if kind == models.DebateKindVote && len(options) < 2 {
		return nil, fmt.Errorf("%w: vote-kind debate needs at least 2 options", ErrInvalidArgument)
	}

	debate := models.Debate{
		Topic:    topic,
		Kind:     kind,
		IsActive: true,
	}
	if category != "" {
		debate.Category = category
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		debate.ExpiresAt = &expires
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&debate).Error; err != nil {
			return err
		}
		for _, label := range options {
			opt := models.DebateOption{DebateID: debate.ID, Label: label}
			if err := tx.Create(&opt).Error; err != nil {
				if IsUniqueViolation(err) {
					return fmt.Errorf("%w: duplicate option %q", ErrInvalidArgument, label)
				}
				return err
			}
			debate.Options = append(debate.Options, opt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 新辩题上线, 作废列表缓存
	utils.GetCache().Delete(debateListCacheKey)
	return &debate, nil
}

const debateListCacheKey = "debates:active"

// ListDebates 辩题列表, 无过滤条件的活跃列表走 60 秒缓存
func ListDebates(kind, category string, activeOnly bool) ([]models.Debate, error) {
	cacheable := kind == "" && category == "" && activeOnly
	if cacheable {
		if cached := utils.GetCache().Get(debateListCacheKey); cached != nil {
			return cached.([]models.Debate), nil
		}
	}

	q := db.DB.Order("activity_level DESC, created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var debates []models.Debate
	if err := q.Limit(100).Find(&debates).Error; err != nil {
		return nil, err
	}

	if cacheable {
		utils.GetCache().Set(debateListCacheKey, debates, 60*time.Second)
	}
	return debates, nil
}

// GetDebate 辩题详情, vote 类型带上候选项
func GetDebate(debateID uint) (*models.Debate, error) {
	var debate models.Debate
	if err := db.DB.First(&debate, debateID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if debate.Kind == models.DebateKindVote {
		if err := db.DB.Where("debate_id = ?", debate.ID).
			Order("id").Find(&debate.Options).Error; err != nil {
			return nil, err
		}
	}
	return &debate, nil
}

// ListMessages 辩题下的未删除发言, 时间正序
func ListMessages(debateID uint, limit int) ([]models.Message, error) {
	var msgs []models.Message
	if err := db.DB.Preload("Agent").
		Where("debate_id = ? AND is_deleted = ?", debateID, false).
		Order("created_at ASC").Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// DebateResults vote 类型的票数分布
func DebateResults(debateID uint) (*models.Debate, error) {
	debate, err := GetDebate(debateID)
	if err != nil {
		return nil, err
	}
	if debate.Kind != models.DebateKindVote {
		return nil, fmt.Errorf("%w: debate #%d is not vote-kind", ErrInvalidArgument, debateID)
	}
	return debate, nil
}

// CloseDebate 运营方手动关闭辩题
func CloseDebate(debateID uint) error {
	res := db.DB.Model(&models.Debate{}).
		Where("id = ? AND is_active = ?", debateID, true).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	utils.GetCache().Delete(debateListCacheKey)
	return nil
}

// CloseExpiredDebates 定时任务: 关闭已过期的辩题, 返回关闭数量
func CloseExpiredDebates(now time.Time) (int64, error) {
	res := db.DB.Model(&models.Debate{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		utils.GetCache().Delete(debateListCacheKey)
		log.Infof("定时任务关闭了 %d 个过期辩题", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
