package generator

import (
	"context"
	"errors"
	"time"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_strategist_generations_total",
			Help: "Total number of report generations, partitioned by outcome.",
		},
		[]string{"provider", "outcome"},
	)
	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ads_strategist_generation_duration_seconds",
			Help:    "Histogram of report generation durations.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"provider"},
	)
)

// instrumented wraps a Client with a per-call timeout, Prometheus metrics and
// a diagnostic log line on failure.
type instrumented struct {
	next     Client
	provider string
	timeout  time.Duration
	logger   *zap.Logger
}

func Instrument(next Client, provider string, timeout time.Duration, logger *zap.Logger) Client {
	return &instrumented{
		next:     next,
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

func (i *instrumented) Generate(ctx context.Context, niche, location string) (*models.Report, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := i.next.Generate(ctx, niche, location)
	elapsed := time.Since(start)

	generationDuration.WithLabelValues(i.provider).Observe(elapsed.Seconds())
	if err != nil {
		kind := KindOf(err)
		generationsTotal.WithLabelValues(i.provider, kind.String()).Inc()

		fields := []zap.Field{
			zap.String("provider", i.provider),
			zap.String("kind", kind.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		}
		var gerr *GenerationError
		if errors.As(err, &gerr) && gerr.PayloadBytes > 0 {
			fields = append(fields, zap.Int("payload_bytes", gerr.PayloadBytes))
		}
		i.logger.Warn("report generation failed", fields...)
		return nil, err
	}

	generationsTotal.WithLabelValues(i.provider, "success").Inc()
	i.logger.Debug("report generated",
		zap.String("provider", i.provider),
		zap.Duration("elapsed", elapsed),
	)
	return report, nil
}

func (i *instrumented) Close() error { return i.next.Close() }
