package controller

import (
	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/pkg/serverutils"
	"deposit-defender-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	Back(ctx *fiber.Ctx) error
	ToggleLane(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
	TickChecklist(ctx *fiber.Ctx) error
	ResetView(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService       service.IReportService
	presentationService service.IPresentationService
	reviewPath          string
}

func NewReportController(
	reportService service.IReportService,
	presentationService service.IPresentationService,
	reviewPath string,
) IReportController {
	return &reportController{
		reportService:       reportService,
		presentationService: presentationService,
		reviewPath:          reviewPath,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cases")
	h.Get(":caseId/report", c.Show)
	h.Post(":caseId/view/navigate", c.Navigate)
	h.Post(":caseId/view/back", c.Back)
	h.Post(":caseId/view/lane", c.ToggleLane)
	h.Post(":caseId/view/toggle", c.Toggle)
	h.Post(":caseId/view/checklist", c.TickChecklist)
	h.Delete(":caseId/view", c.ResetView)
}

func (c *reportController) Show(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}
	caseId := ctx.Params("caseId")

	view, err := c.reportService.GetView(ctx.Context(), sid, caseId, bearerToken(ctx))
	if err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show report", view))
}

func (c *reportController) Navigate(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.presentationService.Navigate(sid, ctx.Params("caseId"), req.Target)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success navigate", res))
}

func (c *reportController) Back(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res := c.presentationService.Back(sid, ctx.Params("caseId"))
	return ctx.JSON(serverutils.SuccessResponse("Success navigate back", res))
}

func (c *reportController) ToggleLane(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ToggleLaneRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.presentationService.ToggleLane(sid, ctx.Params("caseId"), req.Lane)
	return ctx.JSON(serverutils.SuccessResponse("Success toggle lane", res))
}

func (c *reportController) Toggle(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ToggleDisclosureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.presentationService.Toggle(sid, ctx.Params("caseId"), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success toggle disclosure", res))
}

func (c *reportController) TickChecklist(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ChecklistTickRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.presentationService.TickChecklist(sid, ctx.Params("caseId"), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success update checklist", res))
}

func (c *reportController) ResetView(ctx *fiber.Ctx) error {
	sid, err := sessionId(ctx)
	if err != nil {
		return err
	}

	c.presentationService.Reset(sid, ctx.Params("caseId"))
	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset view", nil))
}
