package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 业务错误分类, handler 层据此映射 HTTP 状态码,
// 只有存储层故障才会以其它错误类型向上冒泡
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// RateLimitError 冷却未结束, 携带剩余秒数和绝对重试时间
type RateLimitError struct {
	Action     string
	RetryAfter int       // 剩余等待秒数, 向上取整
	RetryAt    time.Time // 绝对可重试时间
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited, retry in %ds", e.Action, e.RetryAfter)
}

// IsUniqueViolation 判断存储层错误是否为唯一约束冲突,
// 投票和反应的防重完全依赖唯一索引, 这里把违反翻译成 ErrConflict
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动未翻译时退化为字符串匹配, postgres 唯一约束错误码是 23505
	s := err.Error()
	return strings.Contains(s, "23505") || strings.Contains(s, "duplicate key")
}
