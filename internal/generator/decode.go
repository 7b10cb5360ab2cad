package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/schema"
)

var reportSchema = schema.Report()

// decodeReport turns a provider's text payload into a Report. It never
// returns a partially filled report: any departure from the schema fails the
// whole payload.
func decodeReport(provider, text string) (*models.Report, error) {
	payload := stripFence(strings.TrimSpace(text))
	if payload == "" {
		return nil, &GenerationError{
			Kind:     KindEmptyResponse,
			Provider: provider,
			Err:      errors.New("no text content in response"),
		}
	}

	malformed := func(err error) error {
		return &GenerationError{
			Kind:         KindMalformedReport,
			Provider:     provider,
			PayloadBytes: len(payload),
			Err:          err,
		}
	}

	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, malformed(fmt.Errorf("invalid JSON: %w", err))
	}
	if err := schema.Validate(reportSchema, raw); err != nil {
		return nil, malformed(fmt.Errorf("schema mismatch: %w", err))
	}

	var report models.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, malformed(fmt.Errorf("failed to decode report: %w", err))
	}
	return &report, nil
}

// stripFence removes a surrounding ``` block some models emit even in JSON
// mode, along with any language tag on the opening line.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		if tag := strings.TrimSpace(s[:i]); !strings.ContainsAny(tag, "{[") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
