package service

import (
	"context"
	"io"

	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/pkg/logger"
	"deposit-defender-be/pkg/backend"
	"deposit-defender-be/pkg/extraction"
)

type IExtractionService interface {
	// ExtractLease forwards the uploaded lease for extraction and filters the
	// result down to values safe to pre-fill a form with.
	ExtractLease(ctx context.Context, caseId, token, filename string, file io.Reader) (*dto.LeaseExtractResponse, error)
}

type extractionService struct {
	client *backend.Client
	logger logger.ILogger
}

func NewExtractionService(client *backend.Client, log logger.ILogger) IExtractionService {
	return &extractionService{client: client, logger: log}
}

func (s *extractionService) ExtractLease(ctx context.Context, caseId, token, filename string, file io.Reader) (*dto.LeaseExtractResponse, error) {
	result, err := s.client.ExtractLease(ctx, caseId, token, filename, file)
	if err != nil {
		return nil, err
	}

	res := &dto.LeaseExtractResponse{
		Preview:  result.Preview,
		Sections: result.Sections,
	}
	data := result.ExtractedData
	if data == nil {
		return res, nil
	}

	dropped := 0
	if extraction.IsValidAddress(data.PropertyAddress) {
		res.Defaults.PropertyAddress = data.PropertyAddress
	} else if data.PropertyAddress != "" {
		dropped++
	}
	if extraction.IsValidName(data.TenantName) {
		res.Defaults.TenantName = data.TenantName
	} else if data.TenantName != "" {
		dropped++
	}
	if extraction.IsValidName(data.LandlordName) {
		res.Defaults.LandlordName = data.LandlordName
	} else if data.LandlordName != "" {
		dropped++
	}
	if extraction.IsValidDate(data.LeaseStartDate) {
		res.Defaults.LeaseStartDate = data.LeaseStartDate
	} else if data.LeaseStartDate != "" {
		dropped++
	}
	if extraction.IsValidDate(data.LeaseEndDate) {
		res.Defaults.LeaseEndDate = data.LeaseEndDate
	} else if data.LeaseEndDate != "" {
		dropped++
	}
	res.Defaults.DepositAmount = data.DepositAmount

	if dropped > 0 {
		s.logger.Info("ExtractionService", "Dropped low-confidence extracted fields", map[string]interface{}{
			"case_id": caseId, "dropped": dropped,
		})
	}
	return res, nil
}
