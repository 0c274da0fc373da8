// internal/handlers/users.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eshopx/eshop-backend/internal/services"
	"github.com/eshopx/eshop-backend/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	if len(users) == 0 {
		utils.NotFoundResponse(c, "No users found")
		return
	}
	utils.SuccessResponse(c, users)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid user ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "User with id not found")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, user)
	}
}

// POST /users and POST /users/register
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "User not created: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	user, err := h.users.Create(c.Request.Context(), &req)
	if err != nil {
		utils.BadRequestResponse(c, "User not created: "+err.Error())
		return
	}
	utils.SuccessResponse(c, user)
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input")
		return
	}

	resp, err := h.users.Login(c.Request.Context(), &req)
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.BadRequestResponse(c, "User not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.BadRequestResponse(c, "Invalid password")
	case err != nil:
		utils.InternalErrorResponse(c, err.Error())
	default:
		utils.SuccessResponse(c, resp)
	}
}

// GET /users/get/count
func (h *UserHandler) Count(c *gin.Context) {
	count, err := h.users.Count(c.Request.Context())
	if err != nil {
		utils.NotFoundResponse(c, "No user found")
		return
	}
	utils.SuccessResponse(c, gin.H{"userCount": count})
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.users.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, "Invalid user ID")
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "User not found")
	case err != nil:
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.MessageResponse(c, "User was removed")
	}
}
