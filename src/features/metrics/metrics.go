package metrics

import (
	"context"

	"github.com/contre95/soulkeep/src/history"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordUpserts counts import records written by the import hook or the
	// add command.
	RecordUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soulkeep_record_upserts_total",
		Help: "Number of import records inserted or replaced.",
	})

	// RecordEvictions counts records removed, whatever triggered it.
	RecordEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soulkeep_record_evictions_total",
		Help: "Number of import records evicted.",
	})

	// HookEvents counts host hook invocations by hook name.
	HookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soulkeep_hook_events_total",
		Help: "Number of host hook events processed.",
	}, []string{"hook"})
)

// RegisterRecordCount exposes the current record count as a gauge backed by
// the store. Called once when the serve surface starts.
func RegisterRecordCount(store history.Store) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "soulkeep_records",
		Help: "Number of import records currently stored.",
	}, func() float64 {
		count, err := store.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(count)
	})
}
