package services

import (
	"testing"
)

func TestStreakCrossed(t *testing.T) {
	cases := []struct {
		name    string
		pre     []uint
		current uint
		want    bool
	}{
		{"窗口内已有两个不同辩题, 新辩题触发", []uint{1, 2}, 3, true},
		{"新动作落在已参与的辩题上", []uint{1, 2}, 2, false},
		{"只有一个在先辩题", []uint{1}, 2, false},
		{"已经有三个, 不重复触发", []uint{1, 2, 3}, 4, false},
		{"空窗口", nil, 1, false},
	}
	for _, tc := range cases {
		if got := StreakCrossed(tc.pre, tc.current); got != tc.want {
			t.Errorf("%s: StreakCrossed(%v, %d) = %v, want %v", tc.name, tc.pre, tc.current, got, tc.want)
		}
	}
}

func TestQualityCrossed(t *testing.T) {
	cases := []struct {
		before, after int
		want          bool
	}{
		{4, 5, true},
		{5, 6, false}, // 到线之后继续涨赞不再触发
		{6, 7, false},
		{3, 4, false},
		{0, 1, false},
	}
	for _, tc := range cases {
		if got := QualityCrossed(tc.before, tc.after); got != tc.want {
			t.Errorf("QualityCrossed(%d, %d) = %v, want %v", tc.before, tc.after, got, tc.want)
		}
	}
}

func TestActivationCrossed(t *testing.T) {
	cases := []struct {
		before, after int
		want          bool
	}{
		{6, 7, true},
		{5, 8, true},  // 跳级上穿也算
		{7, 8, false}, // 已在线上, 不重复触发
		{7, 6, false}, // 回落不触发
		{6, 6, false},
		{5, 7, true}, // 回落后再次上穿, 允许再发 (按上穿计, 不是一次性)
	}
	for _, tc := range cases {
		if got := ActivationCrossed(tc.before, tc.after); got != tc.want {
			t.Errorf("ActivationCrossed(%d, %d) = %v, want %v", tc.before, tc.after, got, tc.want)
		}
	}
}

func TestBestDebateQualified(t *testing.T) {
	cases := []struct {
		name                string
		upvotes, msgs, level int
		want                bool
	}{
		{"三条件齐备", 30, 50, 8, true},
		{"超出阈值", 100, 80, 10, true},
		{"点赞差一个", 29, 50, 8, false},
		{"发言差一条", 30, 49, 8, false},
		{"活跃度不够", 30, 50, 7, false},
	}
	for _, tc := range cases {
		if got := BestDebateQualified(tc.upvotes, tc.msgs, tc.level); got != tc.want {
			t.Errorf("%s: BestDebateQualified(%d, %d, %d) = %v, want %v", tc.name, tc.upvotes, tc.msgs, tc.level, got, tc.want)
		}
	}
}
