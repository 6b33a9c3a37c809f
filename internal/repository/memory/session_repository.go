package memory

import (
	"sync"
	"time"

	"ai-docchat-be/internal/entity"

	"github.com/google/uuid"
)

// SessionRepository keeps the documents and the chat transcript of the one
// global session behind a single lock.
type SessionRepository struct {
	mu         sync.RWMutex
	documents  []*entity.Document
	index      map[uuid.UUID]int
	transcript []*entity.ChatMessage
	// epoch changes whenever the transcript is wiped.
	epoch uint64
	now   func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		index: make(map[uuid.UUID]int),
		now:   time.Now,
	}
}

func (r *SessionRepository) Add(name string, sizeBytes int64, content, mediaType string) *entity.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := &entity.Document{
		Id:        uuid.New(),
		Name:      name,
		SizeBytes: sizeBytes,
		MediaType: mediaType,
		Content:   content,
		CreatedAt: r.now(),
	}
	r.index[doc.Id] = len(r.documents)
	r.documents = append(r.documents, doc)

	copied := *doc
	return &copied
}

// List returns copies in upload order.
func (r *SessionRepository) List() []*entity.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Document, 0, len(r.documents))
	for _, doc := range r.documents {
		copied := *doc
		out = append(out, &copied)
	}
	return out
}

func (r *SessionRepository) Get(id uuid.UUID) (*entity.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	copied := *r.documents[i]
	return &copied, true
}

func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.documents)
}

func (r *SessionRepository) Remove(id uuid.UUID) (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false, false
	}

	r.documents = append(r.documents[:i], r.documents[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.documents); j++ {
		r.index[r.documents[j].Id] = j
	}

	if len(r.documents) == 0 {
		r.resetTranscript()
		return true, true
	}
	return true, false
}

func (r *SessionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.documents = nil
	r.index = make(map[uuid.UUID]int)
	r.resetTranscript()
}

func (r *SessionRepository) resetTranscript() {
	r.transcript = nil
	r.epoch++
}

func (r *SessionRepository) Append(role, content string) *entity.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(role, content)
}

// AppendWithDocuments appends only while at least one document is held and
// returns the documents and epoch observed under the same lock.
func (r *SessionRepository) AppendWithDocuments(role, content string) (*entity.ChatMessage, []*entity.Document, uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.documents) == 0 {
		return nil, nil, r.epoch, false
	}

	docs := make([]*entity.Document, 0, len(r.documents))
	for _, doc := range r.documents {
		copied := *doc
		docs = append(docs, &copied)
	}
	return r.appendLocked(role, content), docs, r.epoch, true
}

// AppendInEpoch appends only if the transcript has not been wiped since epoch.
func (r *SessionRepository) AppendInEpoch(epoch uint64, role, content string) (*entity.ChatMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.epoch != epoch {
		return nil, false
	}
	return r.appendLocked(role, content), true
}

func (r *SessionRepository) appendLocked(role, content string) *entity.ChatMessage {
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: r.now(),
	}
	r.transcript = append(r.transcript, msg)

	copied := *msg
	return &copied
}

func (r *SessionRepository) ListMessages() []*entity.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.ChatMessage, 0, len(r.transcript))
	for _, msg := range r.transcript {
		copied := *msg
		out = append(out, &copied)
	}
	return out
}

func (r *SessionRepository) ClearTranscript() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetTranscript()
}
