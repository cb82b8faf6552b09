package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func courseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return 0, false
	}
	return uint(id), true
}

// @Summary List published courses
// @Tags courses
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary Get one course with its curriculum
// @Tags courses
// @Produce json
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	entries, err := c.CourseService.Entries(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	course.Curriculum = entries
	util.Success(ctx, course)
}

// @Summary Create a course
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "course details"
// @Success 201 {object} util.Response
// @Router /api/authoring/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	orgID, err := strconv.ParseUint(ctx.Query("organizationId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "missing organizationId")
		return
	}

	course, err := c.CourseService.CreateCourse(uint(orgID), claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.CourseRequest true "course details"
// @Success 200 {object} util.Response
// @Router /api/authoring/courses/{courseId} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Publish a course now
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/authoring/courses/{courseId}/publish [post]
func (c *CourseController) Publish(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	course, err := c.CourseService.Publish(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Add a lesson to the curriculum
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.LessonRequest true "lesson"
// @Success 201 {object} util.Response
// @Router /api/authoring/courses/{courseId}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.AddLesson(id, req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Add a quiz to the curriculum
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body service.QuizRequest true "quiz with questions"
// @Success 201 {object} util.Response
// @Router /api/authoring/courses/{courseId}/quizzes [post]
func (c *CourseController) AddQuiz(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.CourseService.AddQuiz(id, req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary Remove a curriculum entry
// @Tags authoring
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param entryId path int true "curriculum entry id"
// @Success 200 {object} util.Response
// @Router /api/authoring/courses/{courseId}/curriculum/{entryId} [delete]
func (c *CourseController) RemoveEntry(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	entryID, err := strconv.ParseUint(ctx.Param("entryId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	if err := c.CourseService.RemoveEntry(id, uint(entryID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "entry removed"})
}

type reorderRequest struct {
	EntryIDs []uint `json:"entryIds" binding:"required,min=1"`
}

// @Summary Reorder the curriculum
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param body body reorderRequest true "entry ids in the new order"
// @Success 200 {object} util.Response
// @Router /api/authoring/courses/{courseId}/curriculum/reorder [put]
func (c *CourseController) Reorder(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.ReorderEntries(id, req.EntryIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "curriculum reordered"})
}

// @Summary Upload a lesson video
// @Tags authoring
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Param lessonId path int true "lesson id"
// @Param file formData file true "video file"
// @Success 200 {object} util.Response
// @Router /api/authoring/courses/{courseId}/lessons/{lessonId}/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	lessonID, err := strconv.ParseUint(ctx.Param("lessonId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	lesson, err := c.CourseService.UploadLessonVideo(id, uint(lessonID), file)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
