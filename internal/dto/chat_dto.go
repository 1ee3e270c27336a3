package dto

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	Response           string      `json:"response"`
	SessionID          string      `json:"sessionId"`
	RelevantMaterialID *string     `json:"relevantMaterialId"`
	Sources            []SourceDTO `json:"sources,omitempty"`
}

type SourceDTO struct {
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	Source       string  `json:"source"`
	DocumentName string  `json:"documentName"`
}
