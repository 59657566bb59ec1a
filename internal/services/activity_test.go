package services

import (
	"testing"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
)

func TestActivityLevel_DebateKind(t *testing.T) {
	cases := []struct {
		name    string
		msgs    int
		agents  int
		upvotes int
		want    int
	}{
		{"空辩题", 0, 0, 0, 0},
		{"一条发言一个作者", 1, 1, 0, 0},             // 0.1 + 0.5 = 0.6 → 0
		{"两个作者", 5, 2, 0, 1},                 // 0.5 + 1.0 = 1.5 → 1
		{"带点赞", 10, 4, 20, 4},                // 1 + 2 + 1 = 4
		{"上限截断", 100, 20, 200, 10},           // 10 + 10 + 10 → 10
		{"恰好引爆线", 30, 6, 20, 7},              // 3 + 3 + 1 = 7
	}
	for _, tc := range cases {
		in := ActivityInputs{
			Kind:           models.DebateKindDebate,
			MessageCount:   tc.msgs,
			DistinctAgents: tc.agents,
			UpvoteTotal:    tc.upvotes,
		}
		if got := ActivityLevel(in); got != tc.want {
			t.Errorf("%s: ActivityLevel = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestActivityLevel_VoteKind(t *testing.T) {
	cases := []struct {
		votes int
		want  int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{34, 6},
		{35, 7},
		{50, 10},
		{500, 10}, // 上限截断
	}
	for _, tc := range cases {
		in := ActivityInputs{Kind: models.DebateKindVote, VoteCount: tc.votes}
		if got := ActivityLevel(in); got != tc.want {
			t.Errorf("ActivityLevel(votes=%d) = %d, want %d", tc.votes, got, tc.want)
		}
	}
}
