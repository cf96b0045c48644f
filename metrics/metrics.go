// Package metrics collects and exposes the portal's Prometheus metrics.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	DateDeltaComputed = "computed"
	DateDeltaAbsent   = "absent"

	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Recorder is what handlers report to
type Recorder interface {
	RecordToolView(slug string)
	RecordDateDelta(outcome string)
	RecordLogin(outcome string)
	RecordPDFRender(duration time.Duration, err error)
}

// Collector is the Prometheus implementation of Recorder
type Collector struct {
	toolViews      *prometheus.CounterVec
	dateDelta      *prometheus.CounterVec
	logins         *prometheus.CounterVec
	pdfRenders     *prometheus.CounterVec
	pdfRenderTimes prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		toolViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lawyertools_tool_views_total",
			Help: "Tool page views by tool slug",
		}, []string{"tool"}),
		dateDelta: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lawyertools_datedelta_total",
			Help: "DateDelta requests by outcome",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lawyertools_logins_total",
			Help: "Login callbacks by outcome",
		}, []string{"outcome"}),
		pdfRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lawyertools_pdf_renders_total",
			Help: "PDF renders by result",
		}, []string{"result"}),
		pdfRenderTimes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lawyertools_pdf_render_seconds",
			Help:    "PDF render latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.toolViews, c.dateDelta, c.logins, c.pdfRenders, c.pdfRenderTimes)
	return c
}

// RecordToolView counts a tool page view
func (c *Collector) RecordToolView(slug string) {
	c.toolViews.WithLabelValues(slug).Inc()
}

// RecordDateDelta counts a DateDelta request
func (c *Collector) RecordDateDelta(outcome string) {
	c.dateDelta.WithLabelValues(outcome).Inc()
}

// RecordLogin counts a login callback
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordPDFRender records a PDF render and its latency
func (c *Collector) RecordPDFRender(duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.pdfRenders.WithLabelValues(result).Inc()
	c.pdfRenderTimes.Observe(duration.Seconds())
}

type nopRecorder struct{}

func (nopRecorder) RecordToolView(string)                {}
func (nopRecorder) RecordDateDelta(string)               {}
func (nopRecorder) RecordLogin(string)                   {}
func (nopRecorder) RecordPDFRender(time.Duration, error) {}

var (
	mu      sync.RWMutex
	current Recorder = nopRecorder{}
)

// SetRecorder installs the process-wide recorder; nil restores the no-op one
func SetRecorder(r Recorder) {
	mu.Lock()
	defer mu.Unlock()
	if r == nil {
		r = nopRecorder{}
	}
	current = r
}

// Get returns the process-wide recorder
func Get() Recorder {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
