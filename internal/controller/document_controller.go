package controller

import (
	"fmt"

	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/pkg/serverutils"
	"deposit-defender-be/internal/service"
	"deposit-defender-be/pkg/backend"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Retry(ctx *fiber.Ctx) error
	EmailCopy(ctx *fiber.Ctx) error
	LetterPreview(ctx *fiber.Ctx) error
	LetterPreviewEdited(ctx *fiber.Ctx) error
	RenderLetter(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	reviewPath      string
}

func NewDocumentController(documentService service.IDocumentService, reviewPath string) IDocumentController {
	return &documentController{
		documentService: documentService,
		reviewPath:      reviewPath,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Use(serverutils.JwtMiddleware)
	h.Get(":caseId", c.Download)
	h.Get(":caseId/status", c.Status)
	h.Post(":caseId/retry", c.Retry)
	h.Post(":caseId/email", c.EmailCopy)
	h.Get(":caseId/letter", c.LetterPreview)
	h.Post(":caseId/letter/preview", c.LetterPreviewEdited)
	h.Post(":caseId/letter", c.RenderLetter)
}

func (c *documentController) Download(ctx *fiber.Ctx) error {
	caseId := ctx.Params("caseId")
	token, _ := ctx.Locals("token").(string)

	pdf, err := c.documentService.Download(ctx.Context(), caseId, token)
	if err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="deposit-defender-report-%s.pdf"`, caseId))
	return ctx.Send(pdf)
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	res := c.documentService.Status(ctx.Params("caseId"))
	return ctx.JSON(serverutils.SuccessResponse("Success show download status", res))
}

func (c *documentController) Retry(ctx *fiber.Ctx) error {
	res, err := c.documentService.Retry(ctx.Params("caseId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reset download", res))
}

func (c *documentController) EmailCopy(ctx *fiber.Ctx) error {
	var req dto.EmailCopyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if !serverutils.IsValidEmail(req.Email) {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			backend.MessageForCode(backend.CodeInvalidEmail, ""))
	}

	caseId := ctx.Params("caseId")
	token, _ := ctx.Locals("token").(string)

	if err := c.documentService.EmailCopy(ctx.Context(), caseId, token, req.Email); err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success email report copy", nil))
}

func (c *documentController) LetterPreview(ctx *fiber.Ctx) error {
	caseId := ctx.Params("caseId")
	token, _ := ctx.Locals("token").(string)

	res, err := c.documentService.LetterPreview(ctx.Context(), caseId, token, nil)
	if err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview letter", res))
}

// LetterPreviewEdited re-renders the preview from the user's edited fields so
// the body and response deadline track edits without a final render.
func (c *documentController) LetterPreviewEdited(ctx *fiber.Ctx) error {
	var req dto.LetterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	caseId := ctx.Params("caseId")
	token, _ := ctx.Locals("token").(string)

	res, err := c.documentService.LetterPreview(ctx.Context(), caseId, token, &req.Fields)
	if err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview letter", res))
}

func (c *documentController) RenderLetter(ctx *fiber.Ctx) error {
	var req dto.LetterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if req.Fields.TenantMailingAddress == "" {
		return fiber.NewError(fiber.StatusBadRequest, "tenant mailing address is required")
	}

	caseId := ctx.Params("caseId")
	token, _ := ctx.Locals("token").(string)

	pdf, err := c.documentService.RenderLetter(ctx.Context(), caseId, token, req.Fields)
	if err != nil {
		return respondBackendError(ctx, err, c.reviewPath)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="demand-letter-%s.pdf"`, caseId))
	return ctx.Send(pdf)
}
