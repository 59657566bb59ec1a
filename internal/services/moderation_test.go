package services

import (
	"testing"
	"time"
)

func TestShouldDelete(t *testing.T) {
	cases := []struct {
		downvotes, reports int
		want               bool
	}{
		{0, 0, false},
		{9, 0, false},
		{10, 0, true}, // 第 10 个踩触发
		{11, 0, true},
		{0, 4, false},
		{0, 5, true}, // 第 5 个举报触发
		{9, 4, false},
		{10, 5, true},
	}
	for _, tc := range cases {
		if got := ShouldDelete(tc.downvotes, tc.reports); got != tc.want {
			t.Errorf("ShouldDelete(%d, %d) = %v, want %v", tc.downvotes, tc.reports, got, tc.want)
		}
	}
}

func TestBanDuration(t *testing.T) {
	cases := []struct {
		count int
		want  time.Duration
	}{
		{0, 0},
		{4, 0},
		{5, 7 * 24 * time.Hour},
		{9, 7 * 24 * time.Hour},
		{10, 365 * 24 * time.Hour},
		{27, 365 * 24 * time.Hour},
	}
	for _, tc := range cases {
		if got := BanDuration(tc.count); got != tc.want {
			t.Errorf("BanDuration(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}
