package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
)

// Embedder turns text into a fixed-length vector. Failures are fatal to
// the calling operation; there is no keyword fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"embedding_model"`
	Dimensions int    `yaml:"embedding_dimensions"`
}

type Client struct {
	api   *goopenai.Client
	model string
	dims  int
	log   *logger.Logger
}

func New(cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("openai: logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai: api key required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = string(goopenai.SmallEmbedding3)
	}
	return &Client{
		api:   goopenai.NewClient(cfg.APIKey),
		model: model,
		dims:  cfg.Dimensions,
		log:   log.With("client", "OpenAIEmbeddings"),
	}, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	req := goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: goopenai.EmbeddingModel(c.model),
	}
	if c.dims > 0 {
		req.Dimensions = c.dims
	}
	resp, err := c.api.CreateEmbeddings(ctx, req)
	if err != nil {
		c.log.Error("embedding extraction failed", "model", c.model, "text_len", len(text), "error", err)
		return nil, fmt.Errorf("embed text: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embed text: empty response from model %s", c.model)
	}
	return resp.Data[0].Embedding, nil
}
