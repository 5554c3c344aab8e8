package rest

import (
	"errors"
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is installed as the fiber app's error handler so errors
// returned from handlers and middleware share one response shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusBadGateway {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	} else if status == fiber.StatusBadGateway {
		slog.Warn("upstream failed", "path", c.Path(), "err", err)
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		permErr     errs.PermissionsError
		notFoundErr errs.NotFoundError
		conflictErr errs.ConflictError
		invalidErr  errs.ValidationError
		upstreamErr errs.UpstreamError
		fieldErrs   validator.ValidationErrors
		fiberErr    *fiber.Error
	)
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Error: auth.ErrUnauthenticated.Error()}
	case errors.As(err, &permErr):
		return fiber.StatusForbidden, dto.ErrorResponse{Error: "forbidden"}
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound, dto.ErrorResponse{Error: notFoundErr.Error()}
	case errors.As(err, &conflictErr):
		return fiber.StatusConflict, dto.ErrorResponse{Error: conflictErr.Error()}
	case errors.As(err, &fieldErrs):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Error: "validation failed", Details: fieldDetails(fieldErrs)}
	case errors.As(err, &invalidErr):
		msg := "validation failed"
		if invalidErr.Err != nil && len(invalidErr.Details) == 0 {
			msg = invalidErr.Err.Error()
		}
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Error: msg, Details: invalidErr.Details}
	case errors.As(err, &upstreamErr):
		return fiber.StatusBadGateway, dto.ErrorResponse{Error: upstreamErr.Service + " failed", Details: upstreamErr.Details}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Error: fiberErr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"}
}

func fieldDetails(fieldErrs validator.ValidationErrors) []string {
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		details = append(details, fe.Field()+": failed "+msg)
	}
	return details
}
