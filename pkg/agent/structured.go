package agent

import (
	"encoding/json"
	"strings"
)

// StructuredResponse is the two-field contract the system prompt asks the
// model to answer with.
type StructuredResponse struct {
	Response           string  `json:"response"`
	RelevantMaterialID *string `json:"relevant_material_id"`
}

// ParseStructuredResponse extracts the structured reply from the model's
// final text. The model is instructed to answer with bare JSON, but
// replies sometimes arrive fenced or wrapped in prose, so parsing is
// lenient: try the trimmed text, then the outermost {...} slice. When
// nothing parses the whole text becomes the response and the material id
// stays null.
func ParseStructuredResponse(text string) *StructuredResponse {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if parsed := tryParse(trimmed); parsed != nil {
		return parsed
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if parsed := tryParse(trimmed[start : end+1]); parsed != nil {
			return parsed
		}
	}

	return &StructuredResponse{Response: text}
}

func tryParse(candidate string) *StructuredResponse {
	var parsed StructuredResponse
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil
	}
	if parsed.Response == "" {
		return nil
	}
	return &parsed
}
