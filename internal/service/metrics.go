package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaboard_stage_transitions_total",
			Help: "Total number of committed card stage transitions",
		},
		[]string{"from", "to"},
	)

	cardsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ideaboard_cards_created_total",
			Help: "Total number of cards created",
		},
	)

	cardsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ideaboard_cards_deleted_total",
			Help: "Total number of cards soft-deleted",
		},
	)
)
