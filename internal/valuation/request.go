package valuation

import (
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

// AnalysisType selects how the classifier should look at a submission.
type AnalysisType string

const (
	AnalysisImage AnalysisType = "image"
	AnalysisText  AnalysisType = "text"
)

// Request is a farmer's analysis request: a photo, a description, or both.
type Request struct {
	AnalysisType     AnalysisType `json:"analysisType"`
	Image            string       `json:"image,omitempty"`
	Description      string       `json:"description,omitempty"`
	CropType         string       `json:"cropType,omitempty"`
	WasteDescription string       `json:"wasteDescription,omitempty"`
	Quantity         string       `json:"quantity,omitempty"`
	MoistureLevel    string       `json:"moistureLevel,omitempty"`
	Age              string       `json:"age,omitempty"`
}

// RequiredFields is reported to clients when a request is rejected.
var RequiredFields = []string{"analysisType", "image|description"}

// Validate requires an analysis type and at least one of image or description.
func (r Request) Validate() error {
	verr := &domain.ValidationError{}
	switch r.AnalysisType {
	case AnalysisImage, AnalysisText:
	case "":
		verr.Add("analysisType", "is required")
	default:
		verr.Add("analysisType", "must be image or text")
	}
	if strings.TrimSpace(r.Image) == "" && strings.TrimSpace(r.Description) == "" {
		verr.Add("image|description", "either image or description is required")
	}
	return verr.OrNil()
}

// InlineImage decodes the request image, nil when none was sent.
func (r Request) InlineImage() (*domain.InlineImage, error) {
	if strings.TrimSpace(r.Image) == "" {
		return nil, nil
	}
	img, err := domain.ParseDataURI(r.Image)
	if err != nil {
		verr := &domain.ValidationError{}
		verr.Add("image", err.Error())
		return nil, verr
	}
	return img, nil
}
