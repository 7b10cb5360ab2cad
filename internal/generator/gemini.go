package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/schema"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const ProviderGemini = "gemini"

// contentGenerator is the part of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	client *genai.Client
	model  contentGenerator
}

func NewGeminiClient(ctx context.Context, apiKey string, opts ModelOptions) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Name)
	model.SetTemperature(opts.Temperature)
	model.SetTopP(opts.TopP)
	model.SetMaxOutputTokens(opts.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = toGenaiSchema(schema.Report())

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Generate issues exactly one GenerateContent call and decodes the JSON
// payload into a Report.
func (g *GeminiClient) Generate(ctx context.Context, niche, location string) (*models.Report, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(niche, location)))
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Provider: ProviderGemini, Err: err}
	}

	return decodeReport(ProviderGemini, geminiText(resp))
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func toGenaiSchema(s *schema.Schema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
	}

	switch s.Type {
	case schema.TypeObject:
		out.Type = genai.TypeObject
	case schema.TypeArray:
		out.Type = genai.TypeArray
	case schema.TypeString:
		out.Type = genai.TypeString
	case schema.TypeNumber:
		out.Type = genai.TypeNumber
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = toGenaiSchema(p.Schema)
		}
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	return out
}
