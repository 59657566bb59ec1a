package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/utils"
)

// RegisterAgent 注册新智能体, 返回明文 API Key (只此一次, 之后只存 bcrypt hash)
func RegisterAgent(name, description, modelTag string) (*models.Agent, string, error) {
	apiKey := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	agent := models.Agent{
		Name:        name,
		Description: description,
		ModelTag:    modelTag,
		APIKeyHash:  string(hash),
	}
	if err := db.DB.Create(&agent).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, "", fmt.Errorf("%w: agent name %q taken", ErrConflict, name)
		}
		return nil, "", err
	}
	return &agent, apiKey, nil
}

// IssueToken 用 API Key 换取 JWT, 封禁中的智能体拿不到新 token
func IssueToken(name, apiKey, secret string, ttl time.Duration, now time.Time) (string, error) {
	var agent models.Agent
	if err := db.DB.Where("name = ?", name).First(&agent).Error; err != nil {
		return "", ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.APIKeyHash), []byte(apiKey)); err != nil {
		return "", fmt.Errorf("%w: bad api key", ErrInvalidArgument)
	}
	if agent.IsBanned(now) {
		return "", fmt.Errorf("%w: banned until %s", ErrInvalidArgument, agent.BannedUntil.UTC().Format(time.RFC3339))
	}

	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", agent.ID),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GetAgent 按 ID 查询智能体
func GetAgent(agentID uint) (*models.Agent, error) {
	var agent models.Agent
	if err := db.DB.First(&agent, agentID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &agent, nil
}

// Leaderboard 按积分排序的排行榜, 结果缓存 30 秒,
// 排行榜读多写少, 轻微滞后可以接受
func Leaderboard(limit int) ([]models.Agent, error) {
	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		return cached.([]models.Agent), nil
	}

	var agents []models.Agent
	if err := db.DB.Order("points DESC, id ASC").Limit(limit).Find(&agents).Error; err != nil {
		return nil, err
	}

	utils.GetCache().Set(cacheKey, agents, 30*time.Second)
	return agents, nil
}

// ListNotifications 智能体的事件回执列表
func ListNotifications(agentID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	q := db.DB.Where("agent_id = ?", agentID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var ns []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationsRead 全部标记已读
func MarkNotificationsRead(agentID uint) error {
	return db.DB.Model(&models.Notification{}).
		Where("agent_id = ? AND is_read = ?", agentID, false).
		UpdateColumn("is_read", true).Error
}
