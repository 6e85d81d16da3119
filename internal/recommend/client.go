package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

// Backends accepted by NewClient.
const (
	BackendGeminiAPI = "gemini"
	BackendVertexAI  = "vertex"
)

// generator is the subset of *genai.Models the client needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Message is one turn of a stylist chat. Role is "user" or "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Options configures a Client.
type Options struct {
	Backend string
	Model   string
	APIKey  string
	Logger  hclog.Logger
}

// Client sends suggestion and chat prompts to a Gemini model.
type Client struct {
	models generator
	model  string
	logger hclog.Logger
}

// NewClient creates a Gen AI client. The Gemini API backend needs an API key;
// Vertex AI uses application default credentials.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if opts.Backend == BackendVertexAI || opts.Backend == "vertex-ai" {
		cfg.Backend = genai.BackendVertexAI
	}
	if cfg.Backend == genai.BackendGeminiAPI {
		if opts.APIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")
		}
		cfg.APIKey = opts.APIKey
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return newClient(client.Models, opts.Model, opts.Logger), nil
}

func newClient(models generator, model string, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{models: models, model: model, logger: logger}
}

// Suggest asks the model for an outfit and applies the formal dress fallback.
func (c *Client) Suggest(ctx context.Context, r Request) (Suggestion, error) {
	if err := r.Validate(); err != nil {
		return Suggestion{}, err
	}

	prompt := BuildPrompt(r)
	c.logger.Debug("requesting outfit suggestion", "model", c.model, "occasion", r.Occasion)

	config := &genai.GenerateContentConfig{
		SystemInstruction: systemContent(suggestionSystemPrompt),
		ResponseMIMEType:  "application/json",
	}
	text, err := c.generate(ctx, genai.Text(prompt), config)
	if err != nil {
		return Suggestion{}, fmt.Errorf("outfit suggestion failed: %w", err)
	}

	s, err := ParseSuggestion(text)
	if err != nil {
		c.logger.Warn("unparseable suggestion", "reply", text)
		return Suggestion{}, err
	}

	gender := ""
	if r.Profile != nil {
		gender = r.Profile.Gender
	}
	return ApplyOccasion(s, r.Occasion, gender), nil
}

// ChatRequest is one stylist chat turn with its context.
type ChatRequest struct {
	History     []Message    `json:"history,omitempty"`
	Message     string       `json:"message"`
	ImageColors []string     `json:"imageColors,omitempty"`
	Profile     *Profile     `json:"userProfile,omitempty"`
	Closet      []ClosetItem `json:"closet,omitempty"`
}

// Chat continues a stylist conversation and returns the model's reply.
func (c *Client) Chat(ctx context.Context, r ChatRequest) (string, error) {
	if strings.TrimSpace(r.Message) == "" {
		return "", fmt.Errorf("message is required")
	}

	contents := make([]*genai.Content, 0, len(r.History)+1)
	for _, m := range r.History {
		role := "user"
		if m.Role == "model" || m.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Text}}})
	}
	prompt := BuildChatPrompt(r.Message, r.ImageColors, r.Profile, r.Closet)
	contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: prompt}}})

	temperature := float32(0.5)
	config := &genai.GenerateContentConfig{
		SystemInstruction: systemContent(chatSystemPrompt),
		Temperature:       &temperature,
	}
	c.logger.Debug("sending chat turn", "model", c.model, "history", len(r.History))

	reply, err := c.generate(ctx, contents, config)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return reply, nil
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	response, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", err
	}
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}

	var b strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text in response")
	}
	return b.String(), nil
}

func systemContent(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}
