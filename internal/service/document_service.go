package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/pkg/apperror"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/pkg/events"
	"ai-docchat-be/pkg/extractor"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, request *dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type documentService struct {
	sessionRepo    contract.SessionRepository
	extractor      *extractor.Extractor
	cache          *memory.ExtractionCache
	publisher      IPublisherService
	mapper         *mapper.DocumentMapper
	maxUploadBytes int64
	logger         logger.ILogger
}

func NewDocumentService(
	sessionRepo contract.SessionRepository,
	ext *extractor.Extractor,
	cache *memory.ExtractionCache,
	publisher IPublisherService,
	maxUploadBytes int64,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		sessionRepo:    sessionRepo,
		extractor:      ext,
		cache:          cache,
		publisher:      publisher,
		mapper:         mapper.NewDocumentMapper(),
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (s *documentService) tooLarge() error {
	return apperror.NewInvalidInput(fmt.Sprintf("File too large. Maximum size is %s.", humanBytes(s.maxUploadBytes)))
}

func (s *documentService) Upload(ctx context.Context, request *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if request == nil || request.Content == nil || request.FileName == "" {
		return nil, apperror.NewInvalidInput("No file uploaded")
	}

	// 1. Size ceiling before reading anything
	if request.Size > s.maxUploadBytes {
		return nil, s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(request.Content, s.maxUploadBytes+1))
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, s.tooLarge()
	}

	// 2. Format
	format := extractor.DetectFormat(request.MediaType, request.FileName)

	// 3. Extract (cached by content hash)
	content, cached := "", false
	if s.cache != nil {
		content, cached = s.cache.Get(data, format.String())
	}
	if !cached {
		content, err = s.extractor.ExtractFormat(ctx, format, data, request.FileName)
		if err != nil {
			return nil, s.mapExtractionError(request.FileName, err)
		}
		if s.cache != nil {
			s.cache.Set(data, format.String(), content)
		}
	}

	// 4. Store
	doc := s.sessionRepo.Add(request.FileName, int64(len(data)), content, extractor.MediaTypeFor(format, request.MediaType))

	s.logger.Info("DocumentService", "Document uploaded", map[string]interface{}{
		"id":     doc.Id.String(),
		"name":   doc.Name,
		"size":   doc.SizeBytes,
		"format": format.String(),
		"cached": cached,
	})

	s.publisher.PublishEvent(ctx, events.New(events.DocumentUploaded, map[string]interface{}{
		"id":   doc.Id.String(),
		"name": doc.Name,
		"size": doc.SizeBytes,
		"type": doc.MediaType,
	}))

	return s.mapper.DocumentToResponse(doc), nil
}

func (s *documentService) mapExtractionError(fileName string, err error) error {
	var unsupported *extractor.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return apperror.NewUnsupportedFormat(unsupported.Error(), err)
	}

	var extErr *extractor.ExtractionError
	if errors.As(err, &extErr) {
		s.logger.Warn("DocumentService", "Extraction failed", map[string]interface{}{
			"name":   fileName,
			"format": extErr.Format.String(),
			"reason": extErr.Reason,
		})
		return apperror.NewExtractionFailed(extErr.Error(), err)
	}

	return apperror.NewInternal(err)
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	return s.mapper.DocumentsToResponse(s.sessionRepo.List()), nil
}

// Remove is idempotent: unknown or malformed ids succeed without change.
func (s *documentService) Remove(ctx context.Context, id string) error {
	docId, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	removed, transcriptCleared := s.sessionRepo.Remove(docId)
	if !removed {
		return nil
	}

	s.logger.Info("DocumentService", "Document removed", map[string]interface{}{
		"id":                 id,
		"transcript_cleared": transcriptCleared,
	})

	s.publisher.PublishEvent(ctx, events.New(events.DocumentRemoved, map[string]interface{}{"id": id}))
	if transcriptCleared {
		s.publisher.PublishEvent(ctx, events.New(events.SessionCleared, map[string]interface{}{"reason": "last_document_removed"}))
	}

	return nil
}

func (s *documentService) Clear(ctx context.Context) error {
	s.sessionRepo.Clear()

	s.logger.Info("DocumentService", "Session cleared", nil)
	s.publisher.PublishEvent(ctx, events.New(events.SessionCleared, map[string]interface{}{"reason": "cleared"}))

	return nil
}

func humanBytes(n int64) string {
	const mib = 1 << 20
	const kib = 1 << 10
	switch {
	case n >= mib && n%mib == 0:
		return fmt.Sprintf("%d MB", n/mib)
	case n >= kib && n%kib == 0:
		return fmt.Sprintf("%d KB", n/kib)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
