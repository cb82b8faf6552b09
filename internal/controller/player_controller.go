package controller

import (
	"errors"
	"net/http"
	"strconv"

	"learnhub_backend/internal/curriculum"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlayerController struct {
	PlayerService *service.PlayerService
}

func NewPlayerController(playerService *service.PlayerService) *PlayerController {
	return &PlayerController{PlayerService: playerService}
}

// playerError maps tracker and access errors onto the response envelope.
func playerError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, curriculum.ErrItemNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseNotPublished):
		util.Error(ctx, http.StatusForbidden, util.ErrCourseNotPublished.Error())
	case errors.Is(err, util.ErrNotEnrolled):
		util.Error(ctx, http.StatusForbidden, util.ErrNotEnrolled.Error())
	case errors.Is(err, curriculum.ErrItemLocked):
		util.Error(ctx, http.StatusForbidden, "complete the previous items first")
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Player state for a course
// @Description Curriculum items annotated with locked/completed/current flags plus the progress record
// @Tags player
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/player/{courseId} [get]
func (c *PlayerController) GetState(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	state, err := c.PlayerService.GetPlayerState(claims.UserID, id)
	if err != nil {
		playerError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary Mark a lesson complete
// @Description Idempotent; re-completing a lesson is a no-op
// @Tags player
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/player/{courseId}/lessons/{lessonId}/complete [post]
func (c *PlayerController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	lessonID, err := strconv.ParseUint(ctx.Param("lessonId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	rec, err := c.PlayerService.CompleteLesson(claims.UserID, id, uint(lessonID))
	if err != nil {
		playerError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

type quizSubmission struct {
	Answers map[uint]int `json:"answers" binding:"required"`
}

// @Summary Submit a quiz attempt
// @Description Graded server-side; only a passing score completes the curriculum item
// @Tags player
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param quizId path int true "quiz id"
// @Param body body quizSubmission true "answers keyed by question id"
// @Success 200 {object} util.Response
// @Router /api/player/{courseId}/quizzes/{quizId}/submit [post]
func (c *PlayerController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	quizID, err := strconv.ParseUint(ctx.Param("quizId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req quizSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.PlayerService.SubmitQuiz(claims.UserID, id, uint(quizID), req.Answers)
	if err != nil {
		playerError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

type selectRequest struct {
	Index *int `json:"index" binding:"required"`
}

// @Summary Navigate to a curriculum item
// @Description Rejects locked items with 403; completed items are always re-openable
// @Tags player
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body selectRequest true "target index"
// @Success 200 {object} util.Response
// @Router /api/player/{courseId}/select [post]
func (c *PlayerController) SelectItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req selectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.PlayerService.SelectItem(claims.UserID, id, *req.Index)
	if err != nil {
		playerError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// @Summary Progress record for a course
// @Tags player
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/player/{courseId}/progress [get]
func (c *PlayerController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	rec, err := c.PlayerService.GetProgress(claims.UserID, id)
	if err != nil {
		playerError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary Quiz attempt history in a course
// @Tags player
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/player/{courseId}/quiz-results [get]
func (c *PlayerController) QuizHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	results, err := c.PlayerService.QuizHistory(claims.UserID, id)
	if err != nil {
		playerError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
