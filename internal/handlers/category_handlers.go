package handlers

import (
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// ListCategoriesRequest represents query parameters for listing categories
type ListCategoriesRequest struct {
	Search string `query:"search"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListCategories handles GET /v1/categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.CategoryFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	categories, err := h.categoryService.ListCategories(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"limit":      filter.Limit,
		"offset":     filter.Offset,
	})
}

// GetCategory handles GET /v1/categories/:id
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /v1/categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req services.CategoryInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory handles PUT /v1/categories/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.CategoryInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /v1/categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
