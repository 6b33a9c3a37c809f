package mapper

import (
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/pkg/prompt"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

// DocumentToResponse never carries the content.
func (m *DocumentMapper) DocumentToResponse(doc *entity.Document) *dto.DocumentResponse {
	if doc == nil {
		return nil
	}
	return &dto.DocumentResponse{
		Id:   doc.Id,
		Name: doc.Name,
		Size: doc.SizeBytes,
		Type: doc.MediaType,
	}
}

func (m *DocumentMapper) DocumentsToResponse(docs []*entity.Document) []*dto.DocumentResponse {
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, m.DocumentToResponse(doc))
	}
	return out
}

func (m *DocumentMapper) DocumentsToSources(docs []*entity.Document) []prompt.Source {
	out := make([]prompt.Source, 0, len(docs))
	for _, doc := range docs {
		out = append(out, prompt.Source{Name: doc.Name, Content: doc.Content})
	}
	return out
}
