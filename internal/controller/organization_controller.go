package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrganizationController struct {
	OrgService *service.OrganizationService
}

func NewOrganizationController(orgService *service.OrganizationService) *OrganizationController {
	return &OrganizationController{OrgService: orgService}
}

// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.OrganizationRequest true "organization details"
// @Success 201 {object} util.Response
// @Router /api/organizations [post]
func (c *OrganizationController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.OrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	org, err := c.OrgService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, org)
}

// @Summary List organizations
// @Tags organizations
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/organizations [get]
func (c *OrganizationController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	orgs, total, err := c.OrgService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: orgs, Total: total, Page: page, Limit: limit})
}

// @Summary Get an organization
// @Tags organizations
// @Produce json
// @Param id path int true "organization id"
// @Success 200 {object} util.Response
// @Router /api/organizations/{id} [get]
func (c *OrganizationController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid organization id")
		return
	}

	org, err := c.OrgService.Get(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, org)
}

// @Summary Update an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "organization id"
// @Param body body service.OrganizationRequest true "organization details"
// @Success 200 {object} util.Response
// @Router /api/organizations/{id} [put]
func (c *OrganizationController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid organization id")
		return
	}

	var req service.OrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	org, err := c.OrgService.Update(uint(id), req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, org)
}

// @Summary Delete an organization
// @Tags organizations
// @Security ApiKeyAuth
// @Param id path int true "organization id"
// @Success 200 {object} util.Response
// @Router /api/organizations/{id} [delete]
func (c *OrganizationController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid organization id")
		return
	}
	if err := c.OrgService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "organization deleted"})
}

// @Summary Upload the organization logo
// @Tags organizations
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "organization id"
// @Param file formData file true "logo image"
// @Success 200 {object} util.Response
// @Router /api/organizations/{id}/logo [post]
func (c *OrganizationController) UploadLogo(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid organization id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	org, err := c.OrgService.UploadLogo(uint(id), file)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, org)
}
