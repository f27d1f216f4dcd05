package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	text     string
	err      error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, cfg
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

var testCfg = config.GeminiConfig{Temperature: 0.7, TopP: 0.9, Timeout: time.Second}

func TestClassify_TextOnly(t *testing.T) {
	fake := &fakeModels{text: `{"cropType":"Rice","wasteType":"straw"}`}
	c := newClassifier(fake, testCfg, logger.NewNop())

	text, err := c.Classify(context.Background(), "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"cropType":"Rice","wasteType":"straw"}`, text)

	assert.Equal(t, "gemini-1.5-flash", fake.model)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, genai.RoleUser, fake.contents[0].Role)
	require.Len(t, fake.contents[0].Parts, 1)
	assert.Equal(t, "prompt", fake.contents[0].Parts[0].Text)
	assert.Equal(t, float32(0.7), *fake.config.Temperature)
	assert.Equal(t, float32(0.9), *fake.config.TopP)
}

func TestClassify_WithImage(t *testing.T) {
	fake := &fakeModels{text: "ok"}
	c := newClassifier(fake, config.GeminiConfig{Model: "gemini-custom"}, logger.NewNop())

	_, err := c.Classify(context.Background(), "prompt", &domain.InlineImage{MIMEType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, "gemini-custom", fake.model)
	parts := fake.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, parts[1].InlineData.Data)
}

func TestClassify_TransportError(t *testing.T) {
	c := newClassifier(&fakeModels{err: errors.New("deadline exceeded")}, testCfg, logger.NewNop())

	text, err := c.Classify(context.Background(), "prompt", nil)
	assert.Empty(t, text)
	assert.ErrorIs(t, err, domain.ErrClassifierUnavailable)
	assert.NotErrorIs(t, err, domain.ErrMalformedClassification)
}

func TestNewClassifier_RequiresKey(t *testing.T) {
	_, err := NewClassifier(context.Background(), config.GeminiConfig{}, logger.NewNop())
	assert.Error(t, err)
}
