package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/utils"
)

// Response is the success envelope shared by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse is Response plus the page window of a listing.
type PaginatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Total   int64  `json:"total"`
	Pages   int64  `json:"pages"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Response{Success: true, Message: message, Data: data})
}

func paginated(c *fiber.Ctx, message string, data any, pg utils.Pagination, total int64) error {
	return c.JSON(PaginatedResponse{
		Success: true,
		Message: message,
		Data:    data,
		Page:    pg.Page,
		Size:    pg.Size,
		Total:   total,
		Pages:   pg.Pages(total),
	})
}

func pagination(c *fiber.Ctx) (utils.Pagination, error) {
	pg, err := utils.ParsePagination(c)
	if err != nil {
		return utils.Pagination{}, apperr.Validation(err.Error())
	}
	return pg, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// ErrorHandler renders classified errors into the failure envelope. Anything
// unclassified is logged and reported as a bare 500.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			appErr   *apperr.Error
			fiberErr *fiber.Error
		)

		switch {
		case errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal:
			if appErr.Kind == apperr.KindUpstream {
				log.ErrorContext(c.UserContext(), "upstream failure", "path", c.Path(), "error", err)
			}
			return c.Status(apperr.HTTPStatus(appErr.Kind)).JSON(ErrorResponse{
				Message: appErr.Message,
				Detail:  appErr.Message,
			})
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Message: fiberErr.Message,
				Detail:  fiberErr.Message,
			})
		default:
			log.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: "Internal server error",
				Detail:  "Internal server error",
			})
		}
	}
}
