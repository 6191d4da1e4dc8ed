// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tonwallet"

var (
	// Transfers counts finished transfers by confirmation outcome.
	Transfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_total",
		Help:      "Transfers by confirmation outcome.",
	}, []string{"outcome"})

	// SeqnoPolls counts seqno queries made while waiting for confirmation.
	SeqnoPolls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seqno_polls_total",
		Help:      "Seqno queries issued by the confirmation loop.",
	})

	// Resolutions counts successful lazy resolutions per session stage.
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Successful lazy resolutions per session stage.",
	}, []string{"stage"})
)
