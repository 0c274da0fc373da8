// internal/handlers/categories.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eshopx/eshop-backend/internal/services"
	"github.com/eshopx/eshop-backend/internal/utils"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// GET /category
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	// An empty collection is a valid result here.
	utils.SuccessResponse(c, categories)
}

// GET /category/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid category ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "category not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, category)
	}
}

// POST /category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	category, err := h.categories.Create(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	utils.CreatedResponse(c, category)
}

// PUT /category/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	category, err := h.categories.Update(c.Request.Context(), c.Param("id"), &req)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid category ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "category not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, category)
	}
}

// DELETE /category/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	err := h.categories.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid category ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "category not found")
	case err != nil:
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.MessageResponse(c, "the category was removed")
	}
}
