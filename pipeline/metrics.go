package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the pipeline prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	StageDuration *prometheus.HistogramVec
	Documents     prometheus.Counter
	Sentences     prometheus.Counter
	Tokens        prometheus.Counter
	Failures      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "annot_stage_duration_seconds",
				Help:    "Duration of annotation stages. Sentence stages are observed per sentence.",
				Buckets: prometheus.ExponentialBuckets(.00001, 4, 10),
			},
			[]string{"stage"},
		),
		Documents: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "annot_documents_total",
				Help: "Total number of annotated documents.",
			},
		),
		Sentences: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "annot_sentences_total",
				Help: "Total number of annotated sentences.",
			},
		),
		Tokens: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "annot_tokens_total",
				Help: "Total number of annotated tokens.",
			},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annot_failures_total",
				Help: "Total number of failed annotations by error kind.",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.StageDuration, m.Documents, m.Sentences, m.Tokens, m.Failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(st Stage, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(string(st)).Observe(time.Since(start).Seconds())
}

func (m *Metrics) done(sentences, tokens int) {
	if m == nil {
		return
	}
	m.Documents.Inc()
	m.Sentences.Add(float64(sentences))
	m.Tokens.Add(float64(tokens))
}

func (m *Metrics) fail(kind string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(kind).Inc()
}
