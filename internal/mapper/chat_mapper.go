package mapper

import (
	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// MessageToResponse maps the stored role to its wire name ("assistant" is
// sent as "ai").
func (m *ChatMapper) MessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}

	role := msg.Role
	if role == constant.ChatMessageRoleAssistant {
		role = constant.ChatMessageRoleAI
	}

	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		Role:      role,
		Content:   msg.Content,
		Timestamp: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToResponse(msgs []*entity.ChatMessage) []*dto.ChatMessageResponse {
	out := make([]*dto.ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, m.MessageToResponse(msg))
	}
	return out
}
