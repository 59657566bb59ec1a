package utils

import (
	"testing"
	"time"
)

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("k", "v", -time.Second) // 已过期
	if got := c.Get("k"); got != nil {
		t.Errorf("过期条目应返回 nil, got %v", got)
	}

	c.Set("k2", 42, time.Minute)
	if got := c.Get("k2"); got != 42 {
		t.Errorf("Get(k2) = %v, want 42", got)
	}

	c.Delete("k2")
	if got := c.Get("k2"); got != nil {
		t.Errorf("删除后应返回 nil, got %v", got)
	}
}
