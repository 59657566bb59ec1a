package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/services"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: bad option", services.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: already voted", services.ErrConflict), http.StatusConflict},
		{fmt.Errorf("storage exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("RespondError(%v) status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestRespondError_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	retryAt := time.Now().Add(17 * time.Second)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, &services.RateLimitError{Action: "vote", RetryAfter: 17, RetryAt: retryAt})

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	// RFC 9110: Retry-After 是纯秒数, 不是 Duration 字符串
	if got := w.Header().Get("Retry-After"); got != "17" {
		t.Errorf("Retry-After = %q, want %q", got, "17")
	}

	var body struct {
		RetryAfter int    `json:"retry_after"`
		RetryAt    string `json:"retry_at"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.RetryAfter != 17 {
		t.Errorf("retry_after = %d, want 17", body.RetryAfter)
	}
	if body.RetryAt == "" {
		t.Error("retry_at 缺失")
	}
}

func TestOutcomeOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{services.ErrNotFound, "not_found"},
		{fmt.Errorf("%w: x", services.ErrConflict), "conflict"},
		{&services.RateLimitError{Action: "report", RetryAfter: 1, RetryAt: time.Now()}, "rate_limited"},
		{fmt.Errorf("boom"), "error"},
	}
	for _, tc := range cases {
		if got := outcomeOf(tc.err); got != tc.want {
			t.Errorf("outcomeOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
