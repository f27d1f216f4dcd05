package valuation

import (
	"strings"
)

const promptHeader = `You are an expert agricultural waste classification assistant.
Analyze the provided waste information and return complete data in the specified JSON format.

For image analysis, examine the visual characteristics.
For text analysis, use the provided description.

Required Output Format:
{
  "cropType": "string (Rice/Wheat/Sugarcane)",
  "wasteType": "string (stubble/straw/stalk/bagasse/bran)",
  "wasteDescription": "string (detailed description)",
  "quantity": "number",
  "quantityUnit": "string (kg/ton)",
  "moistureLevel": "string (Low/Medium/High)",
  "ageOfWaste": "string (Fresh/1-2 weeks/2-4 weeks/1-2 months/2+ months)",
  "qualityAssessment": {
    "condition": "string",
    "contamination": "string (Present/Not present)"
  },
  "suggestedUses": ["array", "of", "suggestions"],
  "estimatedValue": "number (INR per ton)",
  "confidence": "number (0-1)",
  "notes": "string (additional observations)"
}
`

const promptFooter = "\nProvide complete output in exact specified JSON format.\n"

const notSpecified = "Not specified"

// BuildPrompt renders the single instruction sent to the classifier.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n")
	if req.AnalysisType == AnalysisImage {
		b.WriteString("Analyze this agricultural waste image:\n")
	} else {
		description := req.Description
		if strings.TrimSpace(description) == "" {
			description = req.WasteDescription
		}
		b.WriteString("Analyze this description:\n")
		b.WriteString("Crop Type: " + orNotSpecified(req.CropType) + "\n")
		b.WriteString("Waste Description: " + orNotSpecified(description) + "\n")
		b.WriteString("Quantity: " + orNotSpecified(req.Quantity) + "\n")
		b.WriteString("Moisture Level: " + orNotSpecified(req.MoistureLevel) + "\n")
		b.WriteString("Age of Waste: " + orNotSpecified(req.Age) + "\n")
	}
	b.WriteString(promptFooter)
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return strings.TrimSpace(s)
}
