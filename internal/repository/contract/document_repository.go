package contract

import (
	"ai-docchat-be/internal/entity"

	"github.com/google/uuid"
)

// DocumentRepository holds the uploaded documents of the session.
// Removing the last document, or clearing, also empties the transcript.
type DocumentRepository interface {
	Add(name string, sizeBytes int64, content, mediaType string) *entity.Document
	List() []*entity.Document
	Get(id uuid.UUID) (*entity.Document, bool)
	Count() int
	// Remove is a no-op for unknown ids. transcriptCleared is true when the
	// removal emptied the store and the transcript with it.
	Remove(id uuid.UUID) (removed bool, transcriptCleared bool)
	Clear()
}
