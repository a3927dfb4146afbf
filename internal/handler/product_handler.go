package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/middleware"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/response"
)

// ProductHandler handles marketplace listing routes.
type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles a multipart product listing with its image.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid product request")
		response.BadRequest(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "product image is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("failed to open uploaded image")
		response.InternalError(c, "failed to read product image")
		return
	}
	defer file.Close()

	upload := &service.ImageUpload{
		Reader:      file,
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	product, err := h.productService.Create(ctx, middleware.GetUserID(c), &req, upload)
	if err != nil {
		l.Error().Err(err).Msg("failed to create product")
		response.InternalError(c, "failed to create product")
		return
	}

	response.Created(c, product)
}

// List returns every listing, newest first.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	products, err := h.productService.List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list products")
		response.InternalError(c, "failed to list products")
		return
	}

	response.OK(c, products)
}

// Delete removes a listing owned by the caller.
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	err := h.productService.Delete(ctx, c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "not the owner of this product")
		default:
			l.Error().Err(err).Msg("failed to delete product")
			response.InternalError(c, "failed to delete product")
		}
		return
	}

	response.OK(c, gin.H{"deleted": c.Param("id")})
}
