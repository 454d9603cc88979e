package arbor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultLabel = "result"
	modeLabel   = "mode"

	dispatchHandled   = "handled"
	dispatchUnhandled = "unhandled"
	dispatchDropped   = "dropped"
)

var (
	indexEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arbor_index_entries",
		Help: "The number of live pick identifiers across all interactive indexes.",
	})

	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arbor_dispatch_total",
		Help: "The total number of input events dispatched by pick identifier.",
	}, []string{resultLabel})

	renderPassTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arbor_render_pass_total",
		Help: "The total number of traversal passes.",
	}, []string{modeLabel})
)

func instrumentIndexStore() {
	indexEntries.Inc()
}

func instrumentIndexUnstore() {
	indexEntries.Dec()
}

func instrumentDispatch(result string) {
	dispatchTotal.
		With(prometheus.Labels{resultLabel: result}).
		Inc()
}

func instrumentRenderPass(mode RenderMode) {
	renderPassTotal.
		With(prometheus.Labels{modeLabel: mode.String()}).
		Inc()
}
