package dto

import (
	"io"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	FileName  string
	MediaType string
	Size      int64
	Content   io.Reader
}

type DocumentResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Size int64     `json:"size"`
	Type string    `json:"type"`
}

type UploadDocumentResponse struct {
	Success  bool              `json:"success"`
	Document *DocumentResponse `json:"document"`
}

type ListDocumentsResponse struct {
	Documents []*DocumentResponse `json:"documents"`
}

type SuccessOnlyResponse struct {
	Success bool `json:"success"`
}
