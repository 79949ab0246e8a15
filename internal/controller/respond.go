package controller

import (
	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/pkg/serverutils"
	"deposit-defender-be/pkg/backend"

	"github.com/gofiber/fiber/v2"
)

// respondBackendError translates the upstream error taxonomy into HTTP. A
// payment gate is not an error to the client: it gets a 402 with a redirect
// target so the UI can send the user to checkout.
func respondBackendError(ctx *fiber.Ctx, err error, reviewPath string) error {
	be := backend.AsError(err)
	if be == nil {
		return err
	}

	switch be.Kind {
	case backend.KindPaymentRequired:
		return ctx.Status(fiber.StatusPaymentRequired).JSON(serverutils.BaseResponse[dto.PaymentRequiredResponse]{
			Success: false,
			Message: be.Message,
			Code:    fiber.StatusPaymentRequired,
			Data:    dto.PaymentRequiredResponse{RedirectTo: reviewPath},
		})
	case backend.KindNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, be.Message))
	case backend.KindNetwork:
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(fiber.StatusServiceUnavailable, be.Message))
	case backend.KindRejected:
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(fiber.StatusUnprocessableEntity, be.Message))
	default:
		status := fiber.StatusBadGateway
		if be.Status >= 400 {
			status = be.Status
		}
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, be.Message))
	}
}

// sessionId reads the caller's presentation-session identity. Every browser
// tab carries its own id, so two tabs never share disclosure state.
func sessionId(ctx *fiber.Ctx) (string, error) {
	id := ctx.Get("X-Session-Id")
	if id == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "missing X-Session-Id header")
	}
	return id, nil
}

// bearerToken extracts the raw backend token when present. Report routes are
// reachable pre-auth; the upstream decides what the token is worth.
func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ctx.Query("token")
}
