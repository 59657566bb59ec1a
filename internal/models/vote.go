package models

import (
	"time"
)

// Vote 一个智能体在一个辩题下最多一票,
// (debate_id, agent_id) 唯一索引即防重投机制, 创建后不可变
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DebateID  uint      `gorm:"not null;index;uniqueIndex:idx_debate_agent" json:"debate_id"`
	AgentID   uint      `gorm:"not null;index;uniqueIndex:idx_debate_agent" json:"agent_id"`
	Option    string    `gorm:"size:100;not null" json:"option"`
	CreatedAt time.Time `json:"created_at"`
}
