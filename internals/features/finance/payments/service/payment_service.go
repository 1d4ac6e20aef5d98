// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	enrollSvc "kelasku_backend/internals/features/finance/enrollments/service"
	"kelasku_backend/internals/features/finance/payments/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

/* =======================================================================
   Sentinel errors
======================================================================= */

var (
	ErrPaymentNotFound = errors.New("payment tidak ditemukan")
	ErrUserNotFound    = errors.New("user tidak ditemukan")
	ErrCourseNotFound  = errors.New("course tidak ditemukan")
	// duplicate guard: sudah ada payment pending/verified untuk pasangan ini
	ErrDuplicatePayment = errors.New("sudah ada payment pending atau verified untuk course ini")
	// InvalidState: payment bukan pending
	ErrPaymentNotPending    = errors.New("payment sudah diproses (bukan pending)")
	ErrMissingTransactionID = errors.New("gpay_transaction_id wajib diisi saat verify")
	ErrMissingRejectReason  = errors.New("rejection_reason wajib diisi saat reject")
)

/* =======================================================================
   Create (manual proof)
======================================================================= */

type CreatePaymentInput struct {
	UserID         uuid.UUID
	CourseID       uuid.UUID
	AmountIDR      int
	Screenshot     []byte
	ScreenshotType string
	ScreenshotName string
	RequesterIP    string
	RequesterUA    string
}

func CreatePayment(db *gorm.DB, in CreatePaymentInput) (*model.PaymentModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", in.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	// Duplicate guard scope {pending, verified} — rejected sengaja tidak
	// masuk, jadi resubmission setelah reject diizinkan.
	var existing model.PaymentModel
	err := db.Where(
		"payment_user_id = ? AND payment_course_id = ? AND payment_status IN ?",
		in.UserID, in.CourseID,
		[]string{model.PaymentStatusPending, model.PaymentStatusVerified},
	).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicatePayment
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.PaymentModel{
		PaymentUserID:         in.UserID,
		PaymentCourseID:       in.CourseID,
		PaymentAmountIDR:      in.AmountIDR,
		PaymentCurrency:       "IDR",
		PaymentStatus:         model.PaymentStatusPending,
		PaymentMethod:         model.PaymentMethodManual,
		PaymentScreenshot:     in.Screenshot,
		PaymentScreenshotType: strPtr(in.ScreenshotType),
		PaymentScreenshotName: strPtr(in.ScreenshotName),
		PaymentRequesterIP:    strPtr(in.RequesterIP),
		PaymentRequesterUA:    strPtr(in.RequesterUA),
	}
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

/* =======================================================================
   Verify / Reject (admin) — phase 1 dari two-phase outcome.
   Transisi status + enrollment commit di sini; invoice/email (phase 2)
   dipanggil caller SETELAH commit dan tidak pernah me-rollback phase 1.
======================================================================= */

func VerifyPayment(db *gorm.DB, paymentID uuid.UUID, action string, gpayTxnID, rejectReason *string) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.LockForUpdate(tx).
			First(&payment, "payment_id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if !payment.IsPending() {
			return ErrPaymentNotPending
		}

		now := time.Now()
		switch action {
		case "verify":
			if gpayTxnID == nil || *gpayTxnID == "" {
				return ErrMissingTransactionID
			}
			payment.PaymentStatus = model.PaymentStatusVerified
			payment.PaymentGPayTransactionID = gpayTxnID
			payment.PaymentVerifiedAt = &now
			payment.PaymentPaidAt = &now

			// Side effect enrollment — idempotent (re-check di dalam).
			if err := enrollSvc.AppendEnrollment(tx, payment.PaymentUserID, payment.PaymentCourseID, payment.PaymentID); err != nil {
				return err
			}

		case "reject":
			if rejectReason == nil || *rejectReason == "" {
				return ErrMissingRejectReason
			}
			payment.PaymentStatus = model.PaymentStatusRejected
			payment.PaymentFailureReason = rejectReason

		default:
			return errors.New("action harus verify atau reject")
		}

		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
