package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Usage reports token consumption of a single model invocation. Counts are
// zero when the provider omits usage metadata.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Model        string
}

// Client wraps the Gemini SDK with the small surface the rest of the
// application needs: plain text, schema-constrained JSON, document parsing
// and search-grounded generation.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: c, model: model}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Model returns the configured model identifier, used for usage records.
func (c *Client) Model() string {
	return c.model
}

// GenerateText runs a plain free-form generation.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, Usage, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.usage(nil), err
	}
	return textFromResponse(resp), c.usage(resp), nil
}

// GenerateJSON runs a generation constrained to the given response schema and
// returns the raw JSON text. Extra parts (e.g. an inline document) are sent
// ahead of the prompt.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, extra ...genai.Part) (string, Usage, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = schema

	parts := make([]genai.Part, 0, len(extra)+1)
	parts = append(parts, extra...)
	parts = append(parts, genai.Text(prompt))

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", c.usage(nil), err
	}

	text := textFromResponse(resp)
	if text == "" {
		return "", c.usage(resp), fmt.Errorf("empty response from model")
	}
	return text, c.usage(resp), nil
}

// GenerateGrounded runs a generation with the Google Search retrieval tool
// enabled and returns the text plus any cited source URIs.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string) (string, []string, Usage, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.Tools = []*genai.Tool{{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}}}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", nil, c.usage(nil), err
	}
	return textFromResponse(resp), sourcesFromResponse(resp), c.usage(resp), nil
}

func (c *Client) usage(resp *genai.GenerateContentResponse) Usage {
	u := Usage{Model: c.model}
	if resp == nil || resp.UsageMetadata == nil {
		return u
	}
	u.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
	u.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	u.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	return u
}

func textFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out += string(text)
			}
		}
	}
	return out
}

func sourcesFromResponse(resp *genai.GenerateContentResponse) []string {
	if resp == nil {
		return nil
	}
	var uris []string
	for _, cand := range resp.Candidates {
		if cand.CitationMetadata == nil {
			continue
		}
		for _, src := range cand.CitationMetadata.CitationSources {
			if src.URI != nil && *src.URI != "" {
				uris = append(uris, *src.URI)
			}
		}
	}
	return uris
}
