// Package metrics holds the client's prometheus collectors. They are usable before Register is called.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "billsplit"

var (
	Snapshots = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_total",
		Help:      "Bill snapshots accepted by the lifecycle store, by source.",
	}, []string{"source"})

	SubscriptionStates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_state_changes_total",
		Help:      "Live subscription state transitions, by target state.",
	}, []string{"state"})

	DroppedMessages = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_dropped_messages_total",
		Help:      "Malformed live subscription messages that were discarded.",
	})

	Actions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Contribute and refund attempts, by action and outcome.",
	}, []string{"action", "outcome"})

	Unrecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unrecorded_transfers_total",
		Help:      "On-chain transfers that the ledger failed to record.",
	}, []string{"action"})
)

const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeInFlight   = "in_flight"
	OutcomeWallet     = "wallet_failed"
	OutcomeUnrecorded = "unrecorded"
)

func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Snapshots, SubscriptionStates, DroppedMessages, Actions, Unrecorded} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
