package controller

import (
	"errors"
	"net/http"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{AuthService: authService, UserService: userService}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "account details"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role := model.Learner
	if req.Role == string(model.Author) {
		role = model.Author
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, http.StatusConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdateRequest true "profile fields"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
