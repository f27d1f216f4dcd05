package valuation

import (
	"errors"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_ExtractsEmbeddedObject(t *testing.T) {
	text := `Here is the result: {"cropType":"Rice","wasteType":"straw"} Thanks!`

	c, err := ParseResponse(text)
	require.NoError(t, err)
	assert.Equal(t, "Rice", c.CropType)
	assert.Equal(t, "straw", c.WasteType)
	assert.Empty(t, c.Extra)
}

func TestParseResponse_FullSchemaWithStringNumbers(t *testing.T) {
	text := "```json\n" + `{
  "cropType": "Wheat",
  "wasteType": "stubble",
  "quantity": "2",
  "quantityUnit": "ton",
  "qualityAssessment": {"condition": "Dry", "contamination": "Not present"},
  "suggestedUses": ["biochar", "mulch"],
  "estimatedValue": "2,400 INR",
  "confidence": 0.85,
  "marketTrend": "rising"
}` + "\n```"

	c, err := ParseResponse(text)
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Quantity)
	assert.Equal(t, 2400.0, c.EstimatedValue)
	assert.InDelta(t, 0.85, c.Confidence, 1e-9)
	assert.Equal(t, "Not present", c.QualityAssessment.Contamination)
	assert.Equal(t, []string{"biochar", "mulch"}, c.SuggestedUses)
	assert.Equal(t, "rising", c.Extra["marketTrend"])
}

func TestParseResponse_Failures(t *testing.T) {
	cases := map[string]string{
		"no braces":       "I could not analyze this image.",
		"missing crop":    `{"wasteType":"straw"}`,
		"missing waste":   `result {"cropType":"Rice"}`,
		"broken json":     `{"cropType": "Rice", "wasteType": }`,
		"reversed braces": `} nothing here {`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := ParseResponse(text)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, domain.ErrMalformedClassification))

			var cerr *domain.ClassificationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, text, cerr.Raw)
		})
	}
}

func TestApplyFallbackPricing(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.Classification
		value float64
	}{
		{"wheat zero", domain.Classification{CropType: "Wheat", EstimatedValue: 0}, 2200},
		{"rice lowercase", domain.Classification{CropType: "rice"}, 1850},
		{"sugarcane", domain.Classification{CropType: "Sugarcane"}, 1500},
		{"unknown crop", domain.Classification{CropType: "Maize"}, 1200},
		{"value kept", domain.Classification{CropType: "Wheat", EstimatedValue: 3100}, 3100},
		{"negative replaced", domain.Classification{CropType: "Rice", EstimatedValue: -50}, 1850},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			ApplyFallbackPricing(&c)
			assert.Equal(t, tt.value, c.EstimatedValue)
		})
	}

	assert.NotPanics(t, func() { ApplyFallbackPricing(nil) })
}

func TestBuildPrompt(t *testing.T) {
	t.Run("image mode", func(t *testing.T) {
		p := BuildPrompt(Request{AnalysisType: AnalysisImage, Image: "data:image/png;base64,AA=="})
		assert.Contains(t, p, "Analyze this agricultural waste image:")
		assert.NotContains(t, p, "Analyze this description:")
		assert.Contains(t, p, `"estimatedValue": "number (INR per ton)"`)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(p), "Provide complete output in exact specified JSON format."))
	})

	t.Run("text mode fills missing hints", func(t *testing.T) {
		p := BuildPrompt(Request{AnalysisType: AnalysisText, Description: "dry paddy straw", Quantity: "2 ton"})
		assert.Contains(t, p, "Crop Type: Not specified")
		assert.Contains(t, p, "Waste Description: dry paddy straw")
		assert.Contains(t, p, "Quantity: 2 ton")
		assert.Contains(t, p, "Moisture Level: Not specified")
		assert.Contains(t, p, "Age of Waste: Not specified")
	})
}

func TestRequest_Validate(t *testing.T) {
	assert.NoError(t, Request{AnalysisType: AnalysisText, Description: "husk"}.Validate())
	assert.NoError(t, Request{AnalysisType: AnalysisImage, Image: "data:image/png;base64,AA=="}.Validate())

	err := Request{}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
}

func TestRequest_InlineImage(t *testing.T) {
	img, err := Request{}.InlineImage()
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = Request{Image: "data:image/jpeg;base64,aGVsbG8="}.InlineImage()
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
	assert.Equal(t, []byte("hello"), img.Data)

	_, err = Request{Image: "not a data uri"}.InlineImage()
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
