package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceHTTP = "http"
	SourceMQTT = "mqtt"
)

var (
	CommandsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicecmd_commands_classified_total",
			Help: "Total number of utterances classified, by command type",
		},
		[]string{"type", "source"},
	)

	ClassifyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voicecmd_classify_duration_seconds",
			Help:    "Duration of utterance classification in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
		[]string{"source"},
	)

	TranscriptsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicecmd_transcripts_skipped_total",
			Help: "Transcripts received but not classified, by reason",
		},
		[]string{"reason"},
	)
)
