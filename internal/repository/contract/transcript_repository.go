package contract

import "ai-docchat-be/internal/entity"

type TranscriptRepository interface {
	Append(role, content string) *entity.ChatMessage
	ListMessages() []*entity.ChatMessage
	ClearTranscript()
}

// SessionRepository is the single owner of documents and transcript.
type SessionRepository interface {
	DocumentRepository
	TranscriptRepository

	// AppendWithDocuments appends a turn only while documents are held,
	// returning those documents and the current transcript epoch.
	AppendWithDocuments(role, content string) (msg *entity.ChatMessage, docs []*entity.Document, epoch uint64, ok bool)
	// AppendInEpoch appends a turn only if no clear happened since epoch.
	AppendInEpoch(epoch uint64, role, content string) (msg *entity.ChatMessage, ok bool)
}
