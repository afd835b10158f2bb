package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SignOutcome is "ok" or the wallet error code that ended the build
type SignOutcome string

const SignOK SignOutcome = "ok"

type signerPromMetrics struct {
	keyDerivationSeconds prometheus.Histogram
	buildSeconds         *prometheus.HistogramVec
	signedTxCount        *prometheus.CounterVec
	submittedTxCount     *prometheus.CounterVec
	panicCount           *prometheus.CounterVec
}

func newSignerPromMetrics() *signerPromMetrics {
	return &signerPromMetrics{
		keyDerivationSeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "swap_signer_key_derivation_seconds",
				Help:    "Wall-clock time of one argon2id password derivation",
				Buckets: []float64{.05, .1, .25, .5, 1, 2, 5},
			},
		),
		buildSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "swap_signer_build_seconds",
				Help: "Duration of a full build-and-sign call, derivation included",
			},
			[]string{"curve"},
		),
		signedTxCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swap_signer_build_total",
				Help: "Build-and-sign calls by curve and outcome",
			},
			[]string{"curve", "outcome"},
		),
		submittedTxCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swap_signer_submitted_tx_total",
				Help: "Signed transactions handed to the network by outcome",
			},
			[]string{"outcome"},
		),
		panicCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swap_signer_panics_total",
				Help: "Recovered panics in background routines",
			},
			[]string{"routine"},
		),
	}
}

var signerMetrics = newSignerPromMetrics()

func RecordKeyDerivation(duration time.Duration) {
	signerMetrics.keyDerivationSeconds.Observe(duration.Seconds())
}

func RecordBuild(curve string, outcome SignOutcome, duration time.Duration) {
	signerMetrics.signedTxCount.With(prometheus.Labels{
		"curve":   curve,
		"outcome": string(outcome),
	}).Inc()
	signerMetrics.buildSeconds.With(prometheus.Labels{
		"curve": curve,
	}).Observe(duration.Seconds())
}

func RecordSubmission(outcome SignOutcome) {
	signerMetrics.submittedTxCount.With(prometheus.Labels{
		"outcome": string(outcome),
	}).Inc()
}

func IncreasePanicCount(routine string) {
	signerMetrics.panicCount.With(prometheus.Labels{
		"routine": routine,
	}).Inc()
}
