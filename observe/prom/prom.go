// Package prom exposes the runtime's lifecycle counters as Prometheus
// metrics. Install the collector as the process observer and register it:
//
//	m := prom.New()
//	cotask.SetObserver(m)
//	prometheus.MustRegister(m)
package prom

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	framesStartedDesc = prometheus.NewDesc(
		"cotask_frames_started_total",
		"Task frames whose initial resume was scheduled.",
		nil, nil,
	)
	framesFinishedDesc = prometheus.NewDesc(
		"cotask_frames_finished_total",
		"Task frames that completed or unwound.",
		nil, nil,
	)
	framesCanceledDesc = prometheus.NewDesc(
		"cotask_frames_canceled_total",
		"Task frames that finished by unwinding after cancellation.",
		nil, nil,
	)
	framesActiveDesc = prometheus.NewDesc(
		"cotask_frames_active",
		"Task frames started and not yet finished.",
		nil, nil,
	)
	itemsSentDesc = prometheus.NewDesc(
		"cotask_channel_items_sent_total",
		"Items submitted to unichannels.",
		nil, nil,
	)
	itemsDeliveredDesc = prometheus.NewDesc(
		"cotask_channel_items_delivered_total",
		"Items consumed from unichannels.",
		nil, nil,
	)
)

// Metrics implements cotask.Observer and prometheus.Collector.
type Metrics struct {
	framesStarted  atomic.Int64
	framesFinished atomic.Int64
	framesCanceled atomic.Int64
	itemsSent      atomic.Int64
	itemsDelivered atomic.Int64
}

// New returns a fresh collector.
func New() *Metrics {
	return &Metrics{}
}

// FrameStarted records a scheduled frame.
func (m *Metrics) FrameStarted() {
	m.framesStarted.Add(1)
}

// FrameFinished records a completed or unwound frame.
func (m *Metrics) FrameFinished(canceled bool) {
	m.framesFinished.Add(1)
	if canceled {
		m.framesCanceled.Add(1)
	}
}

// ItemSent records an item submitted to a unichannel.
func (m *Metrics) ItemSent() {
	m.itemsSent.Add(1)
}

// ItemDelivered records an item consumed from a unichannel.
func (m *Metrics) ItemDelivered() {
	m.itemsDelivered.Add(1)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- framesStartedDesc
	ch <- framesFinishedDesc
	ch <- framesCanceledDesc
	ch <- framesActiveDesc
	ch <- itemsSentDesc
	ch <- itemsDeliveredDesc
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	started := m.framesStarted.Load()
	finished := m.framesFinished.Load()
	ch <- prometheus.MustNewConstMetric(framesStartedDesc, prometheus.CounterValue, float64(started))
	ch <- prometheus.MustNewConstMetric(framesFinishedDesc, prometheus.CounterValue, float64(finished))
	ch <- prometheus.MustNewConstMetric(framesCanceledDesc, prometheus.CounterValue, float64(m.framesCanceled.Load()))
	ch <- prometheus.MustNewConstMetric(framesActiveDesc, prometheus.GaugeValue, float64(started-finished))
	ch <- prometheus.MustNewConstMetric(itemsSentDesc, prometheus.CounterValue, float64(m.itemsSent.Load()))
	ch <- prometheus.MustNewConstMetric(itemsDeliveredDesc, prometheus.CounterValue, float64(m.itemsDelivered.Load()))
}
