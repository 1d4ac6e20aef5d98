// file: internals/features/finance/enrollments/controller/enrollment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/finance/enrollments/dto"
	"kelasku_backend/internals/features/finance/enrollments/service"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

type EnrollmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db, Validator: validator.New()}
}

/* =======================================================================
   POST /api/u/enrollments — enroll (payment verified wajib ada)
======================================================================= */

func (ctrl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	user, err := service.Enroll(ctrl.DB, userID, courseID)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}

	log.Printf("[INFO] user %s enrolled di course %s", userID, courseID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Berhasil enroll", dto.FromUser(user))
}

/* =======================================================================
   POST /api/u/enrollments/:course_id/complete — tandai selesai
======================================================================= */

func (ctrl *EnrollmentController) CompleteCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	user, err := service.CompleteCourse(ctrl.DB, userID, courseID)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.Success(c, "Course ditandai selesai", dto.FromUser(user))
}

/* =======================================================================
   GET /api/u/enrollments — daftar enrollment milik sendiri
======================================================================= */

func (ctrl *EnrollmentController) ListMyEnrollments(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}
	return helper.Success(c, "OK", dto.FromUser(&user))
}

/* ===================== error mapping ===================== */

func (ctrl *EnrollmentController) mapServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPaymentRequired):
		// Forbidden + penanda supaya frontend bisa arahkan ke halaman bayar.
		return helper.ErrorWithDetails(c, fiber.StatusForbidden, err.Error(), fiber.Map{
			"requires_payment": true,
		})
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrEnrollmentNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	default:
		log.Printf("[ERROR] enrollment service: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}
