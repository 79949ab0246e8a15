package service

import (
	"context"
	"encoding/json"
	"time"

	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/pkg/logger"
	"deposit-defender-be/internal/pkg/mailer"
	"deposit-defender-be/internal/repository/memory"
	"deposit-defender-be/internal/websocket"
	"deposit-defender-be/pkg/backend"
	"deposit-defender-be/pkg/letter"
	"deposit-defender-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IDocumentService interface {
	// Download streams the case PDF while publishing progress to the
	// websocket hub. Concurrent downloads for the same case are independent
	// fetches; the last writer owns the recorded state.
	Download(ctx context.Context, caseId, token string) ([]byte, error)

	Status(caseId string) *dto.DownloadStatusResponse

	// Retry clears a failed download so the client can request it again.
	Retry(caseId string) (*dto.DownloadStatusResponse, error)

	EmailCopy(ctx context.Context, caseId, token, email string) error

	// LetterPreview renders the demand letter preview. With edited fields it
	// re-renders from them directly, recomputing the deadline, so the preview
	// tracks the user's edits; without, it pre-fills from the case context.
	LetterPreview(ctx context.Context, caseId, token string, edited *letter.Fields) (*dto.LetterPreviewResponse, error)
	RenderLetter(ctx context.Context, caseId, token string, fields letter.Fields) ([]byte, error)
}

type documentService struct {
	client       *backend.Client
	downloadRepo *memory.DownloadStateRepository
	hub          *websocket.Hub
	emailService mailer.IEmailService
	reports      IReportService
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewDocumentService(
	client *backend.Client,
	downloadRepo *memory.DownloadStateRepository,
	hub *websocket.Hub,
	emailService mailer.IEmailService,
	reports IReportService,
	publisher IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		client:       client,
		downloadRepo: downloadRepo,
		hub:          hub,
		emailService: emailService,
		reports:      reports,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *documentService) Download(ctx context.Context, caseId, token string) ([]byte, error) {
	s.setState(caseId, store.DownloadState{Loading: true, Progress: 0})

	lastPercent := -1
	pdf, err := s.client.DownloadDocument(ctx, caseId, token, func(read, total int64) {
		if total <= 0 {
			return
		}
		percent := int(read * 100 / total)
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		s.setState(caseId, store.DownloadState{Loading: true, Progress: percent})
	})
	if err != nil {
		s.recordFailure(ctx, caseId, err)
		return nil, err
	}

	s.setState(caseId, store.DownloadState{Loading: false, Progress: 100})
	s.publishAudit(ctx, dto.EventDownloadCompleted, caseId, map[string]interface{}{
		"bytes": len(pdf),
	})
	return pdf, nil
}

func (s *documentService) Status(caseId string) *dto.DownloadStatusResponse {
	return statusOf(s.downloadRepo.Get(caseId))
}

func (s *documentService) Retry(caseId string) (*dto.DownloadStatusResponse, error) {
	s.downloadRepo.Clear(caseId)
	fresh := store.DownloadState{}
	s.hub.PublishProgress(caseId, fresh)
	return statusOf(fresh), nil
}

func (s *documentService) EmailCopy(ctx context.Context, caseId, token, email string) error {
	pdf, err := s.client.DownloadDocument(ctx, caseId, token, nil)
	if err != nil {
		return err
	}

	if err := s.emailService.SendReportCopy(email, caseId, pdf); err != nil {
		s.logger.Error("DocumentService", "Failed to email report copy", map[string]interface{}{
			"case_id": caseId, "error": err.Error(),
		})
		return fiber.NewError(fiber.StatusBadGateway, "We couldn't send the email. Please try again.")
	}

	s.publishAudit(ctx, dto.EventReportEmailed, caseId, map[string]interface{}{
		"recipient": email,
	})
	return nil
}

func (s *documentService) LetterPreview(ctx context.Context, caseId, token string, edited *letter.Fields) (*dto.LetterPreviewResponse, error) {
	now := time.Now()

	var fields letter.Fields
	if edited != nil {
		fields = *edited
	} else {
		envelope, err := s.reports.GetEnvelope(ctx, caseId, token)
		if err != nil {
			return nil, err
		}
		fields = letter.BuildFields(envelope.Data.Context, envelope.Data.Report)
	}

	return &dto.LetterPreviewResponse{
		Fields:       fields,
		Today:        letter.TodayText(now),
		DeadlineDate: fields.ResponseDeadlineText(now),
		Body:         letter.RenderBody(fields, now),
	}, nil
}

func (s *documentService) RenderLetter(ctx context.Context, caseId, token string, fields letter.Fields) ([]byte, error) {
	pdf, err := s.client.RenderLetter(ctx, caseId, token, fields)
	if err != nil {
		return nil, err
	}
	s.publishAudit(ctx, dto.EventLetterGenerated, caseId, map[string]interface{}{
		"deadline_days": fields.DeadlineDays,
	})
	return pdf, nil
}

// setState persists the state and mirrors it to connected sockets.
func (s *documentService) setState(caseId string, state store.DownloadState) {
	s.downloadRepo.Set(caseId, state)
	s.hub.PublishProgress(caseId, state)
}

func (s *documentService) recordFailure(ctx context.Context, caseId string, err error) {
	state := store.DownloadState{Loading: false, Progress: 0}
	if be := backend.AsError(err); be != nil {
		state.Error = be.Message
		state.Code = be.Code
		state.Retryable = be.Retryable
	} else {
		state.Error = "Download failed."
		state.Retryable = true
	}
	s.setState(caseId, state)
	s.publishAudit(ctx, dto.EventDownloadFailed, caseId, map[string]interface{}{
		"error": state.Error, "code": state.Code, "retryable": state.Retryable,
	})
}

func (s *documentService) publishAudit(ctx context.Context, event, caseId string, details map[string]interface{}) {
	msg := dto.AuditEventMessage{
		Event:      event,
		CaseId:     caseId,
		Details:    details,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish audit event", map[string]interface{}{
			"event": event, "error": err.Error(),
		})
	}
}

func statusOf(state store.DownloadState) *dto.DownloadStatusResponse {
	return &dto.DownloadStatusResponse{
		Loading:   state.Loading,
		Progress:  state.Progress,
		Error:     state.Error,
		Code:      state.Code,
		Retryable: state.Retryable,
	}
}
