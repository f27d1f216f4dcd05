package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var tracer = otel.Tracer("agrilink-service/gemini-classifier")

const defaultModel = "gemini-1.5-flash"

// generator is satisfied by *genai.Models.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Classifier sends valuation prompts to Gemini.
type Classifier struct {
	models      generator
	model       string
	temperature float32
	topP        float32
	timeout     time.Duration
	logger      *logger.Logger
}

// NewClassifier creates the Gemini client from cfg.
func NewClassifier(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newClassifier(client.Models, cfg, log), nil
}

func newClassifier(models generator, cfg config.GeminiConfig, log *logger.Logger) *Classifier {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Classifier{
		models:      models,
		model:       model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		timeout:     cfg.Timeout,
		logger:      log.Named("GeminiClassifier"),
	}
}

// Classify returns the model's text answer. Transport failures and timeouts are
// reported as domain.ErrClassifierUnavailable; the text itself is not inspected.
func (c *Classifier) Classify(ctx context.Context, prompt string, image *domain.InlineImage) (string, error) {
	ctx, span := tracer.Start(ctx, "Gemini.GenerateContent")
	defer span.End()
	span.SetAttributes(attribute.String("gemini.model", c.model), attribute.Bool("gemini.image", image != nil))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if image != nil && len(image.Data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
		TopP:        genai.Ptr(c.topP),
	})
	if err != nil {
		span.RecordError(err)
		c.logger.Error("Gemini request failed", zap.String("model", c.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}

	text := resp.Text()
	c.logger.Debug("Gemini response received", zap.String("model", c.model), zap.Int("chars", len(text)), zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
