// Package generator produces Meta Ads strategy reports by calling an external
// generative model constrained by the report JSON schema.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"go.uber.org/zap"
)

// Generator produces one report per call. Implementations make exactly one
// upstream request and never retry.
type Generator interface {
	Generate(ctx context.Context, niche, location string) (*models.Report, error)
}

// Client is a Generator holding provider resources.
type Client interface {
	Generator
	Close() error
}

type ModelOptions struct {
	Name            string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

type Options struct {
	Provider string
	APIKey   string
	// BaseURL only applies to the openai provider.
	BaseURL string
	Model   ModelOptions
	// Timeout bounds each generation call. Zero means no bound.
	Timeout time.Duration
}

// New builds the configured provider client wrapped with timeout, metrics and
// failure logging.
func New(ctx context.Context, opts Options, logger *zap.Logger) (Client, error) {
	var client Client
	switch opts.Provider {
	case ProviderGemini, "":
		gc, err := NewGeminiClient(ctx, opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		client = gc
		opts.Provider = ProviderGemini
	case ProviderOpenAI:
		client = NewOpenAIClient(opts.APIKey, opts.BaseURL, opts.Model)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", opts.Provider)
	}

	logger.Info("generator ready",
		zap.String("provider", opts.Provider),
		zap.String("model", opts.Model.Name),
		zap.Duration("timeout", opts.Timeout),
	)
	return Instrument(client, opts.Provider, opts.Timeout, logger), nil
}
