// file: internals/features/finance/payments/service/notify.go
package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	"kelasku_backend/internals/features/finance/payments/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

// SendInvoiceNotification adalah phase 2 setelah verify commit: render
// invoice + kirim email. Error di sini TIDAK me-rollback verifikasi —
// dibalas caller sebagai partial success.
func SendInvoiceNotification(db *gorm.DB, payment *model.PaymentModel, mailer InvoiceMailer) error {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", payment.PaymentUserID).Error; err != nil {
		return fmt.Errorf("load user untuk invoice: %w", err)
	}
	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", payment.PaymentCourseID).Error; err != nil {
		return fmt.Errorf("load course untuk invoice: %w", err)
	}

	txn := ""
	if payment.PaymentGPayTransactionID != nil {
		txn = *payment.PaymentGPayTransactionID
	}

	pdfBytes, err := RenderInvoicePDF(InvoiceData{
		OrderID:       payment.PaymentOrderID,
		UserName:      user.UserName,
		UserEmail:     user.UserEmail,
		CourseTitle:   course.CourseTitle,
		AmountIDR:     payment.PaymentAmountIDR,
		Currency:      payment.PaymentCurrency,
		TransactionID: txn,
		PaidAt:        derefTime(payment.PaymentPaidAt),
		VerifiedAt:    derefTime(payment.PaymentVerifiedAt),
	})
	if err != nil {
		return err
	}

	html := fmt.Sprintf(
		"<p>Halo %s,</p><p>Pembayaran untuk course <b>%s</b> sudah diverifikasi. Invoice terlampir.</p><p>Order ID: %s</p>",
		user.UserName, course.CourseTitle, payment.PaymentOrderID,
	)
	subject := fmt.Sprintf("Invoice %s — %s", payment.PaymentOrderID, course.CourseTitle)
	filename := fmt.Sprintf("invoice-%s.pdf", payment.PaymentOrderID)

	if err := mailer.SendInvoice(user.UserEmail, user.UserName, subject, html, pdfBytes, filename); err != nil {
		log.Printf("[ERROR] kirim invoice %s gagal: %v", payment.PaymentOrderID, err)
		return err
	}
	log.Printf("[SUCCESS] invoice %s terkirim ke %s", payment.PaymentOrderID, user.UserEmail)
	return nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
