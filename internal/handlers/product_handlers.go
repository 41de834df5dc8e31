package handlers

import (
	"net/http"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

const presignedURLExpiry = 24 * time.Hour

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productService services.ProductService
	imageService   services.ImageService
}

func NewProductHandlers(productService services.ProductService, imageService services.ImageService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		imageService:   imageService,
	}
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	Search          string `query:"search"`
	IsActive        *bool  `query:"is_active"`
	NeedsRestocking *bool  `query:"needs_restocking"`
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
}

// ListProducts handles GET /v1/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filter := &models.ProductFilter{
		Search:          req.Search,
		IsActive:        req.IsActive,
		NeedsRestocking: req.NeedsRestocking,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}
	products, err := h.productService.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /v1/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req services.ProductInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles PUT /v1/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.ProductInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), id, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /v1/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadProductImage handles POST /v1/products/:id/image
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	ctx := c.Request().Context()
	objectName, err := h.imageService.UploadProductImage(ctx, id, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return respondServiceError(c, err)
	}

	imageURL, err := h.imageService.GetPresignedURL(id, objectName, presignedURLExpiry)
	if err != nil {
		return respondServiceError(c, err)
	}

	product, err := h.productService.SetImageURL(ctx, id, imageURL)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}
