package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QualityAssessment is the classifier's judgement of the material's condition.
type QualityAssessment struct {
	Condition     string `json:"condition"`
	Contamination string `json:"contamination"`
}

// Classification is the typed result of a successful classifier call.
// Keys the classifier returns outside the known schema are kept in Extra
// and written back unchanged.
type Classification struct {
	CropType          string            `json:"cropType"`
	WasteType         string            `json:"wasteType"`
	WasteDescription  string            `json:"wasteDescription,omitempty"`
	Quantity          float64           `json:"quantity,omitempty"`
	QuantityUnit      string            `json:"quantityUnit,omitempty"`
	MoistureLevel     string            `json:"moistureLevel,omitempty"`
	AgeOfWaste        string            `json:"ageOfWaste,omitempty"`
	QualityAssessment QualityAssessment `json:"qualityAssessment"`
	SuggestedUses     []string          `json:"suggestedUses,omitempty"`
	EstimatedValue    float64           `json:"estimatedValue"`
	Confidence        float64           `json:"confidence"`
	Notes             string            `json:"notes,omitempty"`
	Extra             map[string]any    `json:"-"`
}

var classificationKeys = map[string]struct{}{
	"cropType": {}, "wasteType": {}, "wasteDescription": {}, "quantity": {}, "quantityUnit": {},
	"moistureLevel": {}, "ageOfWaste": {}, "qualityAssessment": {}, "suggestedUses": {},
	"estimatedValue": {}, "confidence": {}, "notes": {},
}

// IsKnownClassificationKey reports whether key is part of the typed schema.
func IsKnownClassificationKey(key string) bool {
	_, ok := classificationKeys[key]
	return ok
}

// UnmarshalJSON accepts numbers either as JSON numbers or numeric strings and
// keeps unknown keys in Extra.
func (c *Classification) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Classification{}
	var err error
	out.CropType = rawString(raw["cropType"])
	out.WasteType = rawString(raw["wasteType"])
	out.WasteDescription = rawString(raw["wasteDescription"])
	out.QuantityUnit = rawString(raw["quantityUnit"])
	out.MoistureLevel = rawString(raw["moistureLevel"])
	out.AgeOfWaste = rawString(raw["ageOfWaste"])
	out.Notes = rawString(raw["notes"])
	if out.Quantity, err = rawNumber(raw["quantity"]); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if out.EstimatedValue, err = rawNumber(raw["estimatedValue"]); err != nil {
		return fmt.Errorf("estimatedValue: %w", err)
	}
	if out.Confidence, err = rawNumber(raw["confidence"]); err != nil {
		return fmt.Errorf("confidence: %w", err)
	}
	if qa, ok := raw["qualityAssessment"]; ok && !isNull(qa) {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(qa, &m); err != nil {
			return fmt.Errorf("qualityAssessment: %w", err)
		}
		out.QualityAssessment.Condition = rawString(m["condition"])
		out.QualityAssessment.Contamination = rawString(m["contamination"])
	}
	if su, ok := raw["suggestedUses"]; ok && !isNull(su) {
		var uses []any
		if err := json.Unmarshal(su, &uses); err != nil {
			var single string
			if json.Unmarshal(su, &single) != nil {
				return fmt.Errorf("suggestedUses: %w", err)
			}
			uses = []any{single}
		}
		for _, u := range uses {
			out.SuggestedUses = append(out.SuggestedUses, fmt.Sprint(u))
		}
	}

	for k, v := range raw {
		if IsKnownClassificationKey(k) {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[k] = val
	}

	*c = out
	return nil
}

// MarshalJSON writes the typed fields followed by the preserved extra keys.
func (c Classification) MarshalJSON() ([]byte, error) {
	type plain Classification
	typed, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return typed, nil
	}
	merged := make(map[string]any, len(c.Extra)+len(classificationKeys))
	for k, v := range c.Extra {
		merged[k] = v
	}
	var known map[string]any
	if err := json.Unmarshal(typed, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func isNull(b json.RawMessage) bool {
	return len(b) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

func rawString(b json.RawMessage) string {
	if isNull(b) {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(b))
}

func rawNumber(b json.RawMessage) (float64, error) {
	if isNull(b) {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", string(b))
	}
	return ParseLooseNumber(s), nil
}

// ParseLooseNumber reads the leading number out of strings like "1850", "1,850 INR" or "0.8".
// Anything unparseable yields 0.
func ParseLooseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || (end == 0 && (ch == '-' || ch == '+')) {
			end++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// InlineImage is a decoded image ready to be attached to a classifier request.
type InlineImage struct {
	MIMEType string
	Data     []byte
}
