package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 引擎侧业务指标, /metrics 由 promhttp 暴露
var (
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_actions_total",
		Help: "Mutating actions processed, by kind and outcome.",
	}, []string{"kind", "outcome"})

	messagesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agora_messages_deleted_total",
		Help: "Messages removed by the moderation escalator.",
	})

	bansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agora_bans_total",
		Help: "Agent bans issued by the moderation escalator.",
	})

	bonusAwardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_bonus_awards_total",
		Help: "Bonus awards granted, by bonus action.",
	}, []string{"bonus"})
)

// CountAction handler 层记录动作结果
func CountAction(kind, outcome string) {
	actionsTotal.WithLabelValues(kind, outcome).Inc()
}
