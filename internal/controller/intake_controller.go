package controller

import (
	"deposit-defender-be/internal/pkg/serverutils"
	"deposit-defender-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
	ExtractLease(ctx *fiber.Ctx) error
}

type intakeController struct {
	extractionService service.IExtractionService
	reviewPath        string
}

func NewIntakeController(extractionService service.IExtractionService, reviewPath string) IIntakeController {
	return &intakeController{
		extractionService: extractionService,
		reviewPath:        reviewPath,
	}
}

func (c *intakeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cases")
	h.Post(":caseId/lease", c.ExtractLease)
}

func (c *intakeController) ExtractLease(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("lease")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing lease file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable lease file")
	}
	defer file.Close()

	res, err := c.extractionService.ExtractLease(
		ctx.Context(), ctx.Params("caseId"), bearerToken(ctx), fileHeader.Filename, file)
	if err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success extract lease", res))
}
