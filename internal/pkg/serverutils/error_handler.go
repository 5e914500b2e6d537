package serverutils

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/service"
	"github.com/cristiansanchez/indice/pkg/llm"
	"github.com/cristiansanchez/indice/pkg/search"
	"github.com/gofiber/fiber/v2"
)

// passthrough vendor statuses; anything else becomes 502
var passthroughStatus = map[int]bool{
	fiber.StatusBadRequest:      true,
	fiber.StatusUnauthorized:    true,
	fiber.StatusPaymentRequired: true,
	fiber.StatusForbidden:       true,
	fiber.StatusNotFound:        true,
	fiber.StatusTooManyRequests: true,
}

// StatusFor maps an error to the HTTP status and the message shown to the user.
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	var llmErr *llm.ProviderError
	var searchErr *search.ProviderError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.Is(err, service.ErrEmptyText), errors.Is(err, service.ErrEmptyResource),
		errors.Is(err, entity.ErrDuplicateOrder):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, llm.ErrUnsupportedModel):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, llm.ErrMissingCredential),
		errors.Is(err, search.ErrMissingCredential),
		errors.Is(err, service.ErrPasswordNotConfigured):
		return fiber.StatusInternalServerError, "Server configuration error: " + err.Error()
	case errors.Is(err, service.ErrInvalidPassword), errors.Is(err, service.ErrInvalidSession):
		return fiber.StatusUnauthorized, err.Error()
	case errors.As(err, &llmErr):
		return providerStatus(llmErr.Provider, llmErr.StatusCode, llmErr.Message)
	case errors.As(err, &searchErr):
		return providerStatus(searchErr.Provider, searchErr.StatusCode, searchErr.Message)
	case errors.Is(err, llm.ErrInvalidOutput):
		return fiber.StatusInternalServerError, "The model returned a response that could not be read as the expected JSON"
	case errors.Is(err, llm.ErrEmptyResponse):
		return fiber.StatusBadGateway, "The model returned an empty response"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "The provider did not answer in time"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

func providerStatus(provider string, status int, detail string) (int, string) {
	var message string
	switch status {
	case fiber.StatusTooManyRequests:
		message = fmt.Sprintf("%s rate limit reached, try again later", provider)
	case fiber.StatusPaymentRequired:
		message = fmt.Sprintf("%s quota exhausted", provider)
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		message = fmt.Sprintf("%s rejected the configured credential", provider)
	case fiber.StatusNotFound:
		message = fmt.Sprintf("%s does not know the requested model", provider)
	default:
		message = fmt.Sprintf("%s request failed with status %d", provider, status)
	}
	if detail != "" {
		message += ": " + detail
	}

	if passthroughStatus[status] {
		return status, message
	}
	return fiber.StatusBadGateway, message
}

// ErrorHandler is the fiber error handler; it writes the BaseResponse envelope.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, message := StatusFor(err)

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
			"error":  err.Error(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", details)
		} else {
			log.Warn("HTTP", "Request rejected", details)
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
