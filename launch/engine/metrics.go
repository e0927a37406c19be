package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cosmossdk.io/math"
	"github.com/moonforge-labs/launchpad/launch/types"
)

// Metrics holds all Prometheus metrics for the launch engine.
type Metrics struct {
	TradesTotal    *prometheus.CounterVec
	TradeVolumeBnb *prometheus.CounterVec
	TradeLatency   prometheus.Histogram

	FeesCollectedBnb *prometheus.CounterVec

	PoolsCreated     prometheus.Counter
	ActivePools      prometheus.Gauge
	GraduationsTotal prometheus.Counter
	WithdrawalsTotal prometheus.Counter

	CreatorFeeClaims    *prometheus.CounterVec
	SecondarySellsTotal *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers engine metrics (process-wide singleton).
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			TradesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "trades_total",
					Help:      "Total curve trades executed",
				},
				[]string{"side", "launch_type", "status"},
			),
			TradeVolumeBnb: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "trade_volume_bnb_total",
					Help:      "Total trade volume in whole BNB",
				},
				[]string{"side", "launch_type"},
			),
			TradeLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "trade_latency_seconds",
					Help:      "Trade execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			FeesCollectedBnb: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "fees_collected_bnb_total",
					Help:      "Fees collected in whole BNB, by bucket",
				},
				[]string{"bucket"},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "pools_created_total",
					Help:      "Total pools created",
				},
			),
			ActivePools: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "active_pools",
					Help:      "Pools currently trading on the curve",
				},
			),
			GraduationsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "graduations_total",
					Help:      "Pools that crossed the graduation threshold",
				},
			),
			WithdrawalsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "graduated_withdrawals_total",
					Help:      "Graduated reserve withdrawals executed",
				},
			),
			CreatorFeeClaims: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "creator_fee_claims_total",
					Help:      "Creator fee claims by outcome",
				},
				[]string{"outcome"},
			),
			SecondarySellsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "launchpad",
					Subsystem: types.ModuleName,
					Name:      "secondary_sells_total",
					Help:      "Post-graduation sells routed through the external AMM",
				},
				[]string{"status"},
			),
		}
	})
	return metrics
}

// wholeBnb converts an 18-decimal amount to a float for counters. Metrics
// tolerate the precision loss; ledger math never goes through here.
func wholeBnb(amount math.Int) float64 {
	return math.LegacyNewDecFromInt(amount).
		Quo(math.LegacyNewDecFromInt(types.Scale)).
		MustFloat64()
}
