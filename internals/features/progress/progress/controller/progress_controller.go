// file: internals/features/progress/progress/controller/progress_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/progress/progress/dto"
	"kelasku_backend/internals/features/progress/progress/service"
	helper "kelasku_backend/internals/helpers"
)

type ProgressController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db, Validator: validator.New()}
}

func (ctrl *ProgressController) parseCourseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return uuid.Nil, helper.Error(c, fiber.StatusBadRequest, "course_id tidak valid")
	}
	return id, nil
}

/* =======================================================================
   GET /api/u/progress/:course_id — lazy init + ambil dokumen progress
======================================================================= */

func (ctrl *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := ctrl.parseCourseID(c)
	if err != nil {
		return err
	}

	p, err := service.EnsureProgress(ctrl.DB, userID, courseID)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.Success(c, "OK", dto.FromModel(p))
}

/* =======================================================================
   POST /api/u/progress/:course_id/lectures/:lecture_id
======================================================================= */

func (ctrl *ProgressController) RecordLectureProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := ctrl.parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.LectureProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.RecordLectureProgress(ctrl.DB, userID, courseID, c.Params("lecture_id"), service.LectureEventInput{
		TimeSpentSeconds:    req.TimeSpentSeconds,
		WatchPercentage:     req.WatchPercentage,
		LastWatchedPosition: req.LastWatchedPosition,
		IsCompleted:         req.IsCompleted,
	})
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.Success(c, "Progress lecture tersimpan", dto.FromModel(p))
}

/* =======================================================================
   POST /api/u/progress/:course_id/lectures/:lecture_id/attendance
======================================================================= */

func (ctrl *ProgressController) RecordAttendance(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := ctrl.parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.RecordAttendance(ctrl.DB, userID, courseID, c.Params("lecture_id"), req.Attended, req.TotalSeconds)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.Success(c, "Attendance tersimpan", dto.FromModel(p))
}

/* =======================================================================
   POST /api/u/progress/:course_id/projects/:project_id
======================================================================= */

func (ctrl *ProgressController) RecordProjectSubmission(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := ctrl.parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.ProjectSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.RecordProjectSubmission(ctrl.DB, userID, courseID, c.Params("project_id"), service.ProjectSubmissionInput{
		SubmissionFileURL: req.SubmissionFileURL,
		Grade:             req.Grade,
		ReviewerNotes:     req.ReviewerNotes,
	})
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.Success(c, "Submission project tersimpan", dto.FromModel(p))
}

/* ===================== error mapping ===================== */

func (ctrl *ProgressController) mapServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrProgressNotFound),
		errors.Is(err, service.ErrLectureNotFound),
		errors.Is(err, service.ErrProjectNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	default:
		log.Printf("[ERROR] progress service: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}
