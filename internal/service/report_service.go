package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/mapper"
	"deposit-defender-be/internal/pkg/logger"
	"deposit-defender-be/internal/repository/memory"
	"deposit-defender-be/pkg/backend"
	"deposit-defender-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

type IReportService interface {
	// GetView assembles the full report page for one session.
	GetView(ctx context.Context, sessionId, caseId, token string) (*dto.ReportViewResponse, error)

	// GetEnvelope returns the cached report and case context, fetching from
	// the backend on a cache miss.
	GetEnvelope(ctx context.Context, caseId, token string) (*backend.ReportEnvelope, error)
}

type reportService struct {
	client        *backend.Client
	rdb           *redis.Client
	cacheTTL      time.Duration
	viewStateRepo *memory.ViewStateRepository
	reportMapper  *mapper.ReportMapper
	publisher     IPublisherService
	logger        logger.ILogger
}

func NewReportService(
	client *backend.Client,
	rdb *redis.Client,
	cacheTTLSeconds int,
	viewStateRepo *memory.ViewStateRepository,
	reportMapper *mapper.ReportMapper,
	publisher IPublisherService,
	log logger.ILogger,
) IReportService {
	return &reportService{
		client:        client,
		rdb:           rdb,
		cacheTTL:      time.Duration(cacheTTLSeconds) * time.Second,
		viewStateRepo: viewStateRepo,
		reportMapper:  reportMapper,
		publisher:     publisher,
		logger:        log,
	}
}

func reportCacheKey(caseId string) string {
	return fmt.Sprintf("report:%s", caseId)
}

func (s *reportService) GetView(ctx context.Context, sessionId, caseId, token string) (*dto.ReportViewResponse, error) {
	state := s.viewStateRepo.Get(sessionId, caseId)

	envelope, err := s.GetEnvelope(ctx, caseId, token)
	if err != nil {
		// Park the session on the error node so state reads agree with
		// what the page is showing.
		state.Fail()
		s.viewStateRepo.Save(sessionId, caseId, state)
		return nil, err
	}

	// A successful fetch recovers an errored session back to the hub.
	if state.Nav == store.NavError {
		state.Back()
	}
	view := s.reportMapper.ToView(caseId, envelope.Data.Report, state)

	s.publishAudit(ctx, dto.EventReportDerived, caseId, map[string]interface{}{
		"leverage_points":  len(envelope.Data.Report.LeveragePoints),
		"procedural_steps": len(envelope.Data.Report.ProceduralSteps),
		"key_dates":        len(view.KeyDates),
	})

	return view, nil
}

func (s *reportService) GetEnvelope(ctx context.Context, caseId, token string) (*backend.ReportEnvelope, error) {
	if cached := s.fromCache(ctx, caseId); cached != nil {
		return cached, nil
	}

	envelope, err := s.client.FetchReport(ctx, caseId, token)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, caseId, envelope)
	return envelope, nil
}

// fromCache is best effort. A redis outage degrades to a backend fetch.
func (s *reportService) fromCache(ctx context.Context, caseId string) *backend.ReportEnvelope {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, reportCacheKey(caseId)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("ReportService", "Report cache read failed", map[string]interface{}{
				"case_id": caseId, "error": err.Error(),
			})
		}
		return nil
	}
	var envelope backend.ReportEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data.Report == nil {
		return nil
	}
	return &envelope
}

func (s *reportService) toCache(ctx context.Context, caseId string, envelope *backend.ReportEnvelope) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, reportCacheKey(caseId), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("ReportService", "Report cache write failed", map[string]interface{}{
			"case_id": caseId, "error": err.Error(),
		})
	}
}

func (s *reportService) publishAudit(ctx context.Context, event, caseId string, details map[string]interface{}) {
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
		s.logger.Warn("ReportService", "Failed to publish audit event", map[string]interface{}{
			"event": event, "error": err.Error(),
		})
	}
}
