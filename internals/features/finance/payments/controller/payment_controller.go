// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	"kelasku_backend/internals/features/finance/payments/dto"
	"kelasku_backend/internals/features/finance/payments/model"
	"kelasku_backend/internals/features/finance/payments/service"
	helper "kelasku_backend/internals/helpers"
)

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Mailer    service.InvoiceMailer
}

func NewPaymentController(db *gorm.DB, mailer service.InvoiceMailer) *PaymentController {
	return &PaymentController{
		DB:        db,
		Validator: validator.New(),
		Mailer:    mailer,
	}
}

// maxScreenshotWidth: screenshot bukti transfer dinormalkan ke webp selebar ini.
const maxScreenshotWidth = 1280

/* =======================================================================
   POST /api/u/payments  (student, multipart: course_id, amount_idr, screenshot)
======================================================================= */

func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Form tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Screenshot bukti pembayaran wajib diupload")
	}
	if !constants.IsImageFilename(fileHeader.Filename) {
		return helper.Error(c, fiber.StatusBadRequest, "Screenshot harus berupa gambar (png/jpg/jpeg/webp)")
	}
	raw, _, err := helper.ReadImageFile(fileHeader)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	converted, contentType := helper.ConvertToWebP(raw, maxScreenshotWidth)

	payment, err := service.CreatePayment(ctrl.DB, service.CreatePaymentInput{
		UserID:         userID,
		CourseID:       courseID,
		AmountIDR:      req.AmountIDR,
		Screenshot:     converted,
		ScreenshotType: contentType,
		ScreenshotName: fileHeader.Filename,
		RequesterIP:    c.IP(),
		RequesterUA:    c.Get("User-Agent"),
	})
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}

	log.Printf("[INFO] payment %s dibuat (user=%s course=%s)", payment.PaymentOrderID, userID, courseID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pembayaran berhasil disubmit, menunggu verifikasi admin", dto.FromModel(payment))
}

/* =======================================================================
   PATCH /api/a/payments/:id/verify  (admin)
======================================================================= */

func (ctrl *PaymentController) VerifyPayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "payment id tidak valid")
	}

	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Phase 1: transisi status + enrollment, commit dulu.
	payment, err := service.VerifyPayment(ctrl.DB, paymentID, req.Action, req.GPayTransactionID, req.RejectionReason)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}

	resp := dto.VerifyPaymentResponse{Payment: dto.FromModel(payment)}

	// Phase 2: invoice + email, best-effort. Gagal di sini tidak membatalkan
	// verifikasi yang sudah commit.
	if payment.IsVerified() {
		if err := service.SendInvoiceNotification(ctrl.DB, payment, ctrl.Mailer); err != nil {
			resp.NotificationError = err.Error()
		} else {
			resp.InvoiceEmailSent = true
		}
	}

	msg := "Pembayaran berhasil diverifikasi"
	if payment.PaymentStatus == model.PaymentStatusRejected {
		msg = "Pembayaran ditolak"
	}
	return helper.Success(c, msg, resp)
}

/* =======================================================================
   GET /api/u/payments/:id  — pemilik atau admin
======================================================================= */

func (ctrl *PaymentController) GetPaymentByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "payment id tidak valid")
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil payment")
	}

	if payment.PaymentUserID != userID && helper.GetUserRole(c) != "admin" {
		return helper.Error(c, fiber.StatusForbidden, "Tidak boleh mengakses payment milik user lain")
	}
	return helper.Success(c, "OK", dto.FromModel(&payment))
}

/* =======================================================================
   GET /api/u/payments  — riwayat payment milik sendiri
======================================================================= */

func (ctrl *PaymentController) ListMyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{}).Where("payment_user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung payment")
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil payment")
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, dto.FromModel(&payments[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"payments":   items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

/* =======================================================================
   GET /api/a/payments/pending  — antrian verifikasi admin
======================================================================= */

func (ctrl *PaymentController) ListPendingPayments(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{}).Where("payment_status = ?", model.PaymentStatusPending)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung payment pending")
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at ASC"). // FIFO: yang paling lama nunggu duluan
							Offset(paging.Offset).Limit(paging.Limit).
							Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil payment pending")
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, dto.FromModel(&payments[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"payments":   items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

/* =======================================================================
   GET /api/u/payments/:id/screenshot — unduh bukti (pemilik atau admin)
======================================================================= */

func (ctrl *PaymentController) GetPaymentScreenshot(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "payment id tidak valid")
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil payment")
	}
	if payment.PaymentUserID != userID && helper.GetUserRole(c) != "admin" {
		return helper.Error(c, fiber.StatusForbidden, "Tidak boleh mengakses payment milik user lain")
	}
	if len(payment.PaymentScreenshot) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Payment ini tidak punya screenshot")
	}

	contentType := "application/octet-stream"
	if payment.PaymentScreenshotType != nil {
		contentType = *payment.PaymentScreenshotType
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(payment.PaymentScreenshot)
}

/* ===================== error mapping ===================== */

func (ctrl *PaymentController) mapServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCourseNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicatePayment):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPaymentNotPending):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMissingTransactionID),
		errors.Is(err, service.ErrMissingRejectReason):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] payment service: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}
