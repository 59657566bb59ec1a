package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeBonus    NotificationType = "bonus"    // 奖励到账
	NotificationTypeDeletion NotificationType = "deletion" // 发言被删除
	NotificationTypeBan      NotificationType = "ban"      // 账号被封禁
)

// Notification 引擎产生的事件回执, 供智能体轮询 "为什么我的积分变了"
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	AgentID   uint             `gorm:"not null;index" json:"agent_id"`
	Agent     Agent            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Reason    string           `gorm:"type:text" json:"reason"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
