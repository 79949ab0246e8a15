package service

import (
	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/repository/memory"
	"deposit-defender-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// The step-expansion toggle shares the disclosure endpoint; this section name
// selects it.
const sectionStep = "step"

type IPresentationService interface {
	Navigate(sessionId, caseId, target string) (*dto.ViewStateResponse, error)
	Back(sessionId, caseId string) *dto.ViewStateResponse
	ToggleLane(sessionId, caseId string, lane int) *dto.ViewStateResponse
	Toggle(sessionId, caseId string, req *dto.ToggleDisclosureRequest) *dto.ViewStateResponse
	TickChecklist(sessionId, caseId string, req *dto.ChecklistTickRequest) *dto.ViewStateResponse
	Reset(sessionId, caseId string)
}

type presentationService struct {
	viewStateRepo *memory.ViewStateRepository
}

func NewPresentationService(viewStateRepo *memory.ViewStateRepository) IPresentationService {
	return &presentationService{viewStateRepo: viewStateRepo}
}

func (s *presentationService) Navigate(sessionId, caseId, target string) (*dto.ViewStateResponse, error) {
	state := s.viewStateRepo.Get(sessionId, caseId)
	if !state.Navigate(store.NavKind(target)) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown view: "+target)
	}
	s.viewStateRepo.Save(sessionId, caseId, state)
	return viewStateOf(state), nil
}

func (s *presentationService) Back(sessionId, caseId string) *dto.ViewStateResponse {
	state := s.viewStateRepo.Get(sessionId, caseId)
	state.Back()
	s.viewStateRepo.Save(sessionId, caseId, state)
	return viewStateOf(state)
}

func (s *presentationService) ToggleLane(sessionId, caseId string, lane int) *dto.ViewStateResponse {
	state := s.viewStateRepo.Get(sessionId, caseId)
	state.ToggleLane(lane)
	s.viewStateRepo.Save(sessionId, caseId, state)
	return viewStateOf(state)
}

func (s *presentationService) Toggle(sessionId, caseId string, req *dto.ToggleDisclosureRequest) *dto.ViewStateResponse {
	state := s.viewStateRepo.Get(sessionId, caseId)
	if req.Section == sectionStep {
		state.ToggleStep(req.StepNumber)
	} else {
		state.ToggleDisclosure(store.DisclosureKey(req.StepNumber, req.Section))
	}
	s.viewStateRepo.Save(sessionId, caseId, state)
	return viewStateOf(state)
}

func (s *presentationService) TickChecklist(sessionId, caseId string, req *dto.ChecklistTickRequest) *dto.ViewStateResponse {
	state := s.viewStateRepo.Get(sessionId, caseId)
	state.SetChecklistItem(req.StepNumber, req.Item, req.Done)
	s.viewStateRepo.Save(sessionId, caseId, state)
	return viewStateOf(state)
}

func (s *presentationService) Reset(sessionId, caseId string) {
	s.viewStateRepo.Delete(sessionId, caseId)
}

func viewStateOf(state *store.ViewState) *dto.ViewStateResponse {
	return &dto.ViewStateResponse{
		Nav:          state.Nav,
		OpenLane:     state.OpenLane,
		TransitionMs: store.TransitionMs,
	}
}
