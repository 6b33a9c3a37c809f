package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID
	Name      string
	SizeBytes int64
	MediaType string
	Content   string
	CreatedAt time.Time
}
