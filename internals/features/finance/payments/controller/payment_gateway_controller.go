// file: internals/features/finance/payments/controller/payment_gateway_controller.go
package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	courseModel "kelasku_backend/internals/features/courses/courses/model"
	enrollSvc "kelasku_backend/internals/features/finance/enrollments/service"
	"kelasku_backend/internals/features/finance/payments/dto"
	"kelasku_backend/internals/features/finance/payments/model"
	"kelasku_backend/internals/features/finance/payments/service"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

/* =======================================================================
   POST /api/u/payments/gateway  — checkout via Midtrans Snap
======================================================================= */

func (ctrl *PaymentController) CreateGatewayPayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreateGatewayPaymentRequest
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

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	// Guard duplicate sama seperti jalur manual: satu payment aktif per
	// pasangan (user, course).
	var existing model.PaymentModel
	dupErr := ctrl.DB.Where(
		"payment_user_id = ? AND payment_course_id = ? AND payment_status IN ?",
		userID, courseID,
		[]string{model.PaymentStatusPending, model.PaymentStatusVerified},
	).First(&existing).Error
	if dupErr == nil {
		return helper.Error(c, fiber.StatusConflict, "Sudah ada payment pending atau verified untuk course ini")
	}
	if !errors.Is(dupErr, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa payment")
	}

	provider := model.GatewayProviderMidtrans
	payment := model.PaymentModel{
		PaymentUserID:          userID,
		PaymentCourseID:        courseID,
		PaymentAmountIDR:       req.AmountIDR,
		PaymentCurrency:        "IDR",
		PaymentStatus:          model.PaymentStatusPending,
		PaymentMethod:          model.PaymentMethodGateway,
		PaymentGatewayProvider: &provider,
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat payment")
	}

	token, redirectURL, err := service.GenerateSnapToken(payment, course.CourseTitle, service.CustomerInput{
		FirstName: user.UserName,
		Email:     user.UserEmail,
	})
	if err != nil {
		log.Printf("[ERROR] snap token %s gagal: %v", payment.PaymentOrderID, err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal membuat transaksi di payment gateway")
	}

	payment.PaymentGatewayReference = &token
	payment.PaymentCheckoutURL = &redirectURL
	if err := ctrl.DB.Save(&payment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan payment")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Checkout gateway dibuat", fiber.Map{
		"payment":      dto.FromModel(&payment),
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

/* =======================================================================
   POST /api/payments/midtrans/notification — webhook (tanpa auth)
======================================================================= */

type midtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
}

// verifySignature: sha512(order_id + status_code + gross_amount + server_key)
// harus sama dengan signature_key dari Midtrans.
func verifySignature(n midtransNotification) bool {
	h := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + configs.MidtransServerKey))
	return hex.EncodeToString(h[:]) == n.SignatureKey
}

func (ctrl *PaymentController) MidtransNotification(c *fiber.Ctx) error {
	var notif midtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if !verifySignature(notif) {
		log.Printf("[ERROR] webhook midtrans: signature tidak cocok untuk order %s", notif.OrderID)
		return helper.Error(c, fiber.StatusForbidden, "Signature tidak valid")
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var payment model.PaymentModel
		if err := helper.LockForUpdate(tx).
			First(&payment, "payment_order_id = ?", notif.OrderID).Error; err != nil {
			return err
		}
		// Webhook Midtrans bisa terkirim berulang; status terminal diabaikan.
		if payment.IsTerminal() {
			return nil
		}

		now := time.Now()
		switch notif.TransactionStatus {
		case "capture", "settlement":
			if notif.FraudStatus == "challenge" || notif.FraudStatus == "deny" {
				return nil // biarkan pending sampai fraud review selesai
			}
			payment.PaymentStatus = model.PaymentStatusVerified
			payment.PaymentGPayTransactionID = &notif.TransactionID
			payment.PaymentPaidAt = &now
			payment.PaymentVerifiedAt = &now
			if err := enrollSvc.AppendEnrollment(tx, payment.PaymentUserID, payment.PaymentCourseID, payment.PaymentID); err != nil {
				return err
			}
		case "deny", "cancel", "expire", "failure":
			reason := "gateway: " + notif.TransactionStatus
			payment.PaymentStatus = model.PaymentStatusRejected
			payment.PaymentFailureReason = &reason
		default:
			return nil // pending dan status lain: tunggu notifikasi berikutnya
		}
		return tx.Save(&payment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Order tidak ditemukan")
		}
		log.Printf("[ERROR] webhook midtrans order %s: %v", notif.OrderID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}

	return helper.Success(c, "OK", nil)
}
