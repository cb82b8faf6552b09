package controller

import (
	"errors"
	"net/http"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CheckoutController struct {
	CheckoutService *service.CheckoutService
}

func NewCheckoutController(checkoutService *service.CheckoutService) *CheckoutController {
	return &CheckoutController{CheckoutService: checkoutService}
}

func checkoutError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseNotPublished),
		errors.Is(err, util.ErrCouponNotUsable),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrOrderNotPending),
		errors.Is(err, util.ErrCoursePaid),
		errors.Is(err, util.ErrEmptyOrder):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

type basketRequest struct {
	CourseIDs  []uint `json:"courseIds" binding:"required,min=1"`
	CouponCode string `json:"couponCode"`
}

// @Summary Price a basket
// @Description Subtotal, coupon discount and revenue split without creating an order
// @Tags checkout
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body basketRequest true "course ids and optional coupon"
// @Success 200 {object} util.Response
// @Router /api/checkout/quote [post]
func (c *CheckoutController) Quote(ctx *gin.Context) {
	var req basketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quote, err := c.CheckoutService.Quote(req.CourseIDs, req.CouponCode)
	if err != nil {
		checkoutError(ctx, err)
		return
	}
	util.Success(ctx, quote)
}

// @Summary Create a pending order
// @Tags checkout
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body basketRequest true "course ids and optional coupon"
// @Success 201 {object} util.Response
// @Router /api/checkout/orders [post]
func (c *CheckoutController) CreateOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req basketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	order, err := c.CheckoutService.CreateOrder(claims.UserID, req.CourseIDs, req.CouponCode)
	if err != nil {
		checkoutError(ctx, err)
		return
	}
	util.Created(ctx, order)
}

// @Summary Confirm an order as paid
// @Description Marks the order paid and creates its enrollments
// @Tags checkout
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path int true "order id"
// @Success 200 {object} util.Response
// @Router /api/checkout/orders/{orderId}/confirm [post]
func (c *CheckoutController) ConfirmOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid order id")
		return
	}

	order, err := c.CheckoutService.ConfirmOrder(claims.UserID, uint(orderID))
	if err != nil {
		checkoutError(ctx, err)
		return
	}
	util.Success(ctx, order)
}

// @Summary Cancel a pending order
// @Tags checkout
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path int true "order id"
// @Success 200 {object} util.Response
// @Router /api/checkout/orders/{orderId}/cancel [post]
func (c *CheckoutController) CancelOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid order id")
		return
	}

	order, err := c.CheckoutService.CancelOrder(claims.UserID, uint(orderID))
	if err != nil {
		checkoutError(ctx, err)
		return
	}
	util.Success(ctx, order)
}

// @Summary List my orders
// @Tags checkout
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/checkout/orders [get]
func (c *CheckoutController) MyOrders(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	orders, err := c.CheckoutService.MyOrders(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, orders)
}

// @Summary Enroll into a free course
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 201 {object} util.Response
// @Router /api/courses/{courseId}/enroll [post]
func (c *CheckoutController) EnrollFree(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.CheckoutService.EnrollFree(claims.UserID, id)
	if err != nil {
		checkoutError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// @Summary List my enrollments
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments [get]
func (c *CheckoutController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.CheckoutService.MyEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}
