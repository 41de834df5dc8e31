package handlers

import (
	"errors"
	"log"

	"github.com/waellejmi/pos-app/internal/common"

	"github.com/labstack/echo/v4"
)

// respondServiceError maps typed service errors onto the standard error
// envelope. Anything unrecognized is logged and reported as a server error.
func respondServiceError(c echo.Context, err error) error {
	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) {
		return common.SendValidationError(c, validationErr.Field, validationErr.Message)
	}
	var notFoundErr *common.NotFoundError
	if errors.As(err, &notFoundErr) {
		return common.SendNotFoundError(c, notFoundErr.Resource)
	}
	log.Printf("ERROR: %v", err)
	return common.SendServerError(c, "Internal server error")
}
