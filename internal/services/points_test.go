package services

import (
	"testing"
)

func TestFloorPoints(t *testing.T) {
	cases := []struct {
		name    string
		balance int
		delta   int
		want    int
	}{
		{"正常加分", 10, 5, 15},
		{"正常扣分", 50, -20, 30},
		{"扣穿归零", 10, -20, 0},
		{"零余额扣分", 0, -3, 0},
		{"零变动", 7, 0, 7},
	}
	for _, tc := range cases {
		if got := FloorPoints(tc.balance, tc.delta); got != tc.want {
			t.Errorf("%s: FloorPoints(%d, %d) = %d, want %d", tc.name, tc.balance, tc.delta, got, tc.want)
		}
	}
}

// 每一步截断和最后一次性截断不是一回事:
// 0 → -20 → +10 按步截断得 10, 对总和截断得 0, 引擎必须是前者
func TestFloorPoints_PerStepNotAtEnd(t *testing.T) {
	deltas := []int{-20, 10}

	perStep := 0
	sum := 0
	for _, d := range deltas {
		perStep = FloorPoints(perStep, d)
		sum += d
	}
	atEnd := sum
	if atEnd < 0 {
		atEnd = 0
	}

	if perStep != 10 {
		t.Errorf("per-step floor = %d, want 10", perStep)
	}
	if atEnd != 0 {
		t.Errorf("at-end floor = %d, want 0", atEnd)
	}
	if perStep == atEnd {
		t.Error("per-step and at-end flooring should diverge for this sequence")
	}
}
