package common

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateUUID(t *testing.T) {
	id := uuid.New()

	parsed, err := ValidateUUID(id.String(), "id")
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ValidateUUID("", "id")
	assert.Error(t, err)

	_, err = ValidateUUID("not-a-uuid", "id")
	assert.Error(t, err)
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, -5)
	assert.Equal(t, 15, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ValidatePaginationParams(500, 30)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 30, offset)

	limit, offset = ValidatePaginationParams(20, 10)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 10, offset)
}

func TestValidateDateFormat(t *testing.T) {
	assert.NoError(t, ValidateDateFormat("2026-08-28", "date"))
	assert.NoError(t, ValidateDateFormat("", "date"))
	assert.Error(t, ValidateDateFormat("28/08/2026", "date"))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("email", "email already registered")
	assert.Equal(t, "email: email already registered", err.Error())

	bare := &ValidationError{Message: "invalid payload"}
	assert.Equal(t, "invalid payload", bare.Error())
}

func TestNotFoundErrorMessage(t *testing.T) {
	id := uuid.New()
	err := NewNotFoundError("product", id.String())
	assert.Contains(t, err.Error(), "product")
	assert.Contains(t, err.Error(), id.String())
}
