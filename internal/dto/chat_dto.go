package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Question string `json:"question" validate:"required,notblank"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SendChatResponse struct {
	Success bool                 `json:"success"`
	Message *ChatMessageResponse `json:"message"`
}

type ListMessagesResponse struct {
	Messages []*ChatMessageResponse `json:"messages"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
