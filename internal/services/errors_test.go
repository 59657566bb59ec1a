package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"驱动已翻译", gorm.ErrDuplicatedKey, true},
		{"包了一层也认", fmt.Errorf("create vote: %w", gorm.ErrDuplicatedKey), true},
		{"裸 postgres 错误码", errors.New(`ERROR: duplicate key value violates unique constraint "idx_debate_agent" (SQLSTATE 23505)`), true},
		{"只有错误码", errors.New("SQLSTATE 23505"), true},
		{"nil", nil, false},
		{"无关错误", errors.New("connection refused"), false},
		{"其它 gorm 错误", gorm.ErrRecordNotFound, false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Errorf("%s: IsUniqueViolation(%v) = %v, want %v", tc.name, tc.err, got, tc.want)
		}
	}
}
