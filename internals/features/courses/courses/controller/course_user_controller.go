// file: internals/features/courses/courses/controller/course_user_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/courses/courses/dto"
	"kelasku_backend/internals/features/courses/courses/model"
	svc "kelasku_backend/internals/features/courses/courses/service"
	helper "kelasku_backend/internals/helpers"
)

type CourseUserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseUserController(db *gorm.DB) *CourseUserController {
	return &CourseUserController{DB: db, Validator: validator.New()}
}

// GET /api/public/courses?category=&grade=&page=&per_page=
func (ctrl *CourseUserController) ListCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).
		Model(&model.CourseModel{}).
		Where("course_status = ?", model.CourseStatusActive)

	if category := c.Query("category"); category != "" {
		q = q.Where("course_category = ?", category)
	}
	if grade := c.QueryInt("grade"); grade > 0 {
		q = q.Where("course_grade_min <= ? AND course_grade_max >= ?", grade, grade)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var courses []model.CourseModel
	if err := q.Order("course_level_number ASC, course_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, dto.ToCourseResponse(&courses[i], false))
	}

	return helper.Success(c, "OK", fiber.Map{
		"courses":    out,
		"pagination": helper.BuildPagination(total, paging, len(out)),
	})
}

// GET /api/public/courses/:id
func (ctrl *CourseUserController) GetCourseByID(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "course tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.ToCourseResponse(&course, true))
}

// GET /api/public/courses/:id/content
// Denormalized view: total chapter/lecture + daftar lecture free-preview.
func (ctrl *CourseUserController) GetCourseContent(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "course tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	chapters := course.Chapters()
	return helper.Success(c, "OK", fiber.Map{
		"course_id":       course.CourseID,
		"course_content":  chapters,
		"content_summary": model.SummarizeContent(chapters),
	})
}

// POST /api/u/courses/:id/submissions (student)
func (ctrl *CourseUserController) AddSubmission(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.AddSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var submission *model.Submission
	_, err = svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		sub, err := svc.AddSubmission(course, req.ProjectID, userID, req.FileURL)
		if err != nil {
			return err
		}
		submission = sub
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Submission terkirim", submission)
}
