package valuation

import (
	"encoding/json"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

// ParseResponse extracts the JSON object between the first '{' and the last '}' of the
// classifier text. Every failure is a *domain.ClassificationError carrying the raw text.
func ParseResponse(text string) (*domain.Classification, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end < start {
		return nil, &domain.ClassificationError{Reason: "no JSON object in response", Raw: text}
	}

	var c domain.Classification
	if err := json.Unmarshal([]byte(text[start:end+1]), &c); err != nil {
		return nil, &domain.ClassificationError{Reason: "invalid JSON: " + err.Error(), Raw: text}
	}
	if c.CropType == "" || c.WasteType == "" {
		return nil, &domain.ClassificationError{Reason: "incomplete response: cropType and wasteType are required", Raw: text}
	}
	return &c, nil
}
