// Package gemini is the boundary to the hosted text-generation service:
// it builds the outbound instruction, issues exactly one request per
// invocation, cleans up the response, and normalizes failures.
package gemini

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"
)

const timeout = 120 * time.Second

// Sampling parameters are fixed; regeneration runs strictly hotter than a
// first-time generation so variants actually differ.
const (
	TemperatureInitial    float32 = 0.75
	TemperatureRegenerate float32 = 0.85
	topP                  float32 = 0.95
	topK                  float32 = 50
)

// Request carries everything needed for one generation. Questions define
// the iteration order of Answers; PreviousText non-empty marks a
// regeneration of an earlier result from the same inputs.
type Request struct {
	Category     models.Category
	Questions    []models.Question
	Answers      models.AnswerSet
	PreviousText string
}

type Client struct {
	genai  *genai.Client
	model  string
	logger *zap.Logger
}

// New builds a client for the given model. An empty API key is not an
// error here: the client is returned unconfigured and every Generate call
// fails with ErrNotConfigured until the key is supplied.
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	c := &Client{model: model, logger: logger}
	if apiKey == "" {
		logger.Warn("Gemini API key is not configured; prompt generation will fail")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c.genai = gc
	return c, nil
}

// Generate sends one request to the model and returns the cleaned prompt
// text. No retries; the caller re-triggers on failure.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c == nil || c.genai == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	temperature := TemperatureInitial
	if req.PreviousText != "" {
		temperature = TemperatureRegenerate
	}

	instruction := BuildInstruction(req)
	c.logger.Debug("generating prompt",
		zap.String("category", string(req.Category)),
		zap.Bool("regenerate", req.PreviousText != ""),
		zap.Int("instruction_len", len(instruction)))

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(instruction), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
		TopP:        genai.Ptr(topP),
		TopK:        genai.Ptr(topK),
	})
	if err != nil {
		c.logger.Warn("generation failed", zap.Error(err))
		return "", translateError(err)
	}

	return CleanResponse(resp.Text()), nil
}
