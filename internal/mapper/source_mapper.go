package mapper

import (
	"study-buddy-be/internal/dto"
	"study-buddy-be/pkg/knowledge"
)

// ToSourceDTOs maps retrieved passages to the response contract, keeping
// rank order.
func ToSourceDTOs(sources []knowledge.Source) []dto.SourceDTO {
	if len(sources) == 0 {
		return nil
	}
	out := make([]dto.SourceDTO, 0, len(sources))
	for _, s := range sources {
		out = append(out, dto.SourceDTO{
			Content:      s.Content,
			Score:        s.Score,
			Source:       s.SourceURI,
			DocumentName: s.DocumentName,
		})
	}
	return out
}
