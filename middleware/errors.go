package middleware

import (
	"errors"

	"netlab/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps the service error taxonomy to HTTP statuses;
// raw storage errors never leak to the caller
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return JsonResponse(c, fiber.StatusBadRequest, false, ve.Message, nil)
	}

	var ce *services.ConflictError
	if errors.As(err, &ce) {
		return JsonResponse(c, fiber.StatusConflict, false, ce.Message, nil)
	}

	if errors.Is(err, services.ErrNotFound) {
		return JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	}

	if errors.Is(err, services.ErrMaxAttemptsReached) {
		return JsonResponse(c, fiber.StatusTooManyRequests, false, "Maximum submission attempts reached!", nil)
	}

	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
