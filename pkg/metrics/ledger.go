package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	toursCreated  prometheus.Counter
	votes         prometheus.Counter
	verifications prometheus.Counter
	checkIns      prometheus.Counter
	pointsAwarded *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

var (
	ledgerOnce     sync.Once
	ledgerRegistry *LedgerMetrics
)

// Ledger returns the process-wide collectors, registering them on first use.
func Ledger() *LedgerMetrics {
	ledgerOnce.Do(func() {
		ledgerRegistry = &LedgerMetrics{
			toursCreated: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "tourproof_tours_created_total",
				Help: "Number of tours registered.",
			}),
			votes: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "tourproof_votes_total",
				Help: "Number of accepted upvotes.",
			}),
			verifications: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "tourproof_tours_verified_total",
				Help: "Number of tours that crossed the vote threshold.",
			}),
			checkIns: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "tourproof_checkins_total",
				Help: "Number of confirmed check-ins.",
			}),
			pointsAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "tourproof_points_awarded_total",
				Help: "Reward points credited, by recipient role.",
			}, []string{"role"}),
			rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "tourproof_rejected_operations_total",
				Help: "Rejected ledger operations by operation and error code.",
			}, []string{"operation", "code"}),
		}
		prometheus.MustRegister(
			ledgerRegistry.toursCreated,
			ledgerRegistry.votes,
			ledgerRegistry.verifications,
			ledgerRegistry.checkIns,
			ledgerRegistry.pointsAwarded,
			ledgerRegistry.rejections,
		)
	})
	return ledgerRegistry
}

func (m *LedgerMetrics) ObserveTourCreated() {
	if m == nil {
		return
	}
	m.toursCreated.Inc()
}

func (m *LedgerMetrics) ObserveVote() {
	if m == nil {
		return
	}
	m.votes.Inc()
}

func (m *LedgerMetrics) ObserveVerified() {
	if m == nil {
		return
	}
	m.verifications.Inc()
}

func (m *LedgerMetrics) ObserveCheckIn() {
	if m == nil {
		return
	}
	m.checkIns.Inc()
}

func (m *LedgerMetrics) ObservePoints(role string, amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	if role == "" {
		role = "unknown"
	}
	m.pointsAwarded.WithLabelValues(role).Add(amount)
}

func (m *LedgerMetrics) ObserveRejection(operation, code string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, code).Inc()
}
