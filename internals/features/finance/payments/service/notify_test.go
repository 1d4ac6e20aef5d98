// file: internals/features/finance/payments/service/notify_test.go
package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	"kelasku_backend/internals/features/finance/payments/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

type fakeMailer struct {
	sent     int
	toEmail  string
	subject  string
	filename string
	attLen   int
	fail     bool
}

func (f *fakeMailer) SendInvoice(toEmail, toName, subject, htmlBody string, attachment []byte, filename string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent++
	f.toEmail = toEmail
	f.subject = subject
	f.filename = filename
	f.attLen = len(attachment)
	return nil
}

func TestRenderInvoicePDF(t *testing.T) {
	pdfBytes, err := RenderInvoicePDF(InvoiceData{
		OrderID:       "ORD-1-abcd",
		UserName:      "Budi",
		UserEmail:     "budi@example.com",
		CourseTitle:   "Scratch Dasar",
		AmountIDR:     2999,
		Currency:      "IDR",
		TransactionID: "TXN123",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdfBytes), "%PDF"))
}

func verifiedPaymentFixture(t *testing.T, db *gorm.DB) *model.PaymentModel {
	t.Helper()
	user, course := seedUserAndCourse(t, db)
	p := createPendingPayment(t, db, user, course)
	txn := "TXN123"
	verified, err := VerifyPayment(db, p.PaymentID, "verify", &txn, nil)
	require.NoError(t, err)
	return verified
}

func TestSendInvoiceNotification(t *testing.T) {
	db := setupDB(t)
	payment := verifiedPaymentFixture(t, db)

	mailer := &fakeMailer{}
	require.NoError(t, SendInvoiceNotification(db, payment, mailer))

	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "budi@example.com", mailer.toEmail)
	assert.Contains(t, mailer.subject, payment.PaymentOrderID)
	assert.Equal(t, "invoice-"+payment.PaymentOrderID+".pdf", mailer.filename)
	assert.Greater(t, mailer.attLen, 0)
}

// Gagal kirim email tidak menyentuh status payment yang sudah verified.
func TestSendInvoiceNotification_FailureDoesNotTouchPayment(t *testing.T) {
	db := setupDB(t)
	payment := verifiedPaymentFixture(t, db)

	err := SendInvoiceNotification(db, payment, &fakeMailer{fail: true})
	require.Error(t, err)

	var reloaded model.PaymentModel
	require.NoError(t, db.First(&reloaded, "payment_id = ?", payment.PaymentID).Error)
	assert.Equal(t, model.PaymentStatusVerified, reloaded.PaymentStatus)

	var user userModel.UserModel
	require.NoError(t, db.First(&user, "user_id = ?", payment.PaymentUserID).Error)
	assert.Equal(t, 1, user.UserTotalCoursesEnrolled)

	var course courseModel.CourseModel
	require.NoError(t, db.First(&course, "course_id = ?", payment.PaymentCourseID).Error)
	assert.Equal(t, 1, course.CourseEnrollmentCount)
}
