// file: internals/features/finance/payments/service/payment_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	"kelasku_backend/internals/features/finance/payments/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&model.PaymentModel{},
	))
	return db
}

func seedUserAndCourse(t *testing.T, db *gorm.DB) (*userModel.UserModel, *courseModel.CourseModel) {
	t.Helper()

	user := &userModel.UserModel{
		UserName:     "Budi",
		UserEmail:    "budi@example.com",
		UserPassword: "x",
	}
	require.NoError(t, db.Create(user).Error)

	course := &courseModel.CourseModel{
		CourseTitle:    "Scratch Dasar",
		CourseCategory: courseModel.CourseCategoryJunior,
		CoursePriceIDR: 2999,
		CourseStatus:   courseModel.CourseStatusActive,
	}
	require.NoError(t, db.Create(course).Error)
	return user, course
}

func createPendingPayment(t *testing.T, db *gorm.DB, user *userModel.UserModel, course *courseModel.CourseModel) *model.PaymentModel {
	t.Helper()
	p, err := CreatePayment(db, CreatePaymentInput{
		UserID:    user.UserID,
		CourseID:  course.CourseID,
		AmountIDR: course.CoursePriceIDR,
	})
	require.NoError(t, err)
	return p
}

func TestCreatePayment_StartsPending(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)

	p := createPendingPayment(t, db, user, course)
	assert.Equal(t, model.PaymentStatusPending, p.PaymentStatus)
	assert.Equal(t, model.PaymentMethodManual, p.PaymentMethod)
	assert.Equal(t, 2999, p.PaymentAmountIDR)
	assert.NotEmpty(t, p.PaymentOrderID)
	assert.Nil(t, p.PaymentVerifiedAt)
}

func TestCreatePayment_UnknownUserOrCourse(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)

	_, err := CreatePayment(db, CreatePaymentInput{UserID: course.CourseID, CourseID: course.CourseID, AmountIDR: 1})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = CreatePayment(db, CreatePaymentInput{UserID: user.UserID, CourseID: user.UserID, AmountIDR: 1})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCreatePayment_DuplicateGuard(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)
	createPendingPayment(t, db, user, course)

	_, err := CreatePayment(db, CreatePaymentInput{
		UserID:    user.UserID,
		CourseID:  course.CourseID,
		AmountIDR: 2999,
	})
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

// Skenario: U submit payment untuk C seharga 2999 → pending. Admin verify
// dengan TXN123 → verified, U ter-enroll dengan referensi C dan P,
// total_courses_enrolled jadi 1.
func TestVerifyPayment_VerifyEnrollsUser(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)
	p := createPendingPayment(t, db, user, course)

	txn := "TXN123"
	verified, err := VerifyPayment(db, p.PaymentID, "verify", &txn, nil)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusVerified, verified.PaymentStatus)
	require.NotNil(t, verified.PaymentGPayTransactionID)
	assert.Equal(t, "TXN123", *verified.PaymentGPayTransactionID)
	assert.NotNil(t, verified.PaymentVerifiedAt)
	assert.NotNil(t, verified.PaymentPaidAt)

	var reloaded userModel.UserModel
	require.NoError(t, db.First(&reloaded, "user_id = ?", user.UserID).Error)
	entries := reloaded.EnrolledCourses()
	require.Len(t, entries, 1)
	assert.Equal(t, course.CourseID, entries[0].CourseID)
	assert.Equal(t, p.PaymentID, entries[0].PaymentID)
	assert.Equal(t, userModel.EnrollmentStatusInProgress, entries[0].Status)
	assert.Equal(t, 1, reloaded.UserTotalCoursesEnrolled)

	var reloadedCourse courseModel.CourseModel
	require.NoError(t, db.First(&reloadedCourse, "course_id = ?", course.CourseID).Error)
	assert.Equal(t, 1, reloadedCourse.CourseEnrollmentCount)
}

func TestVerifyPayment_RequiresTransactionID(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)
	p := createPendingPayment(t, db, user, course)

	_, err := VerifyPayment(db, p.PaymentID, "verify", nil, nil)
	assert.ErrorIs(t, err, ErrMissingTransactionID)

	var reloaded model.PaymentModel
	require.NoError(t, db.First(&reloaded, "payment_id = ?", p.PaymentID).Error)
	assert.Equal(t, model.PaymentStatusPending, reloaded.PaymentStatus)
}

func TestVerifyPayment_TerminalIsImmutable(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)
	p := createPendingPayment(t, db, user, course)

	txn := "TXN123"
	_, err := VerifyPayment(db, p.PaymentID, "verify", &txn, nil)
	require.NoError(t, err)

	// verify kedua kalinya ditolak, status tidak berubah
	_, err = VerifyPayment(db, p.PaymentID, "verify", &txn, nil)
	assert.ErrorIs(t, err, ErrPaymentNotPending)

	reason := "salah"
	_, err = VerifyPayment(db, p.PaymentID, "reject", nil, &reason)
	assert.ErrorIs(t, err, ErrPaymentNotPending)

	var reloaded model.PaymentModel
	require.NoError(t, db.First(&reloaded, "payment_id = ?", p.PaymentID).Error)
	assert.Equal(t, model.PaymentStatusVerified, reloaded.PaymentStatus)
}

func TestVerifyPayment_RejectRequiresReason(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)
	p := createPendingPayment(t, db, user, course)

	_, err := VerifyPayment(db, p.PaymentID, "reject", nil, nil)
	assert.ErrorIs(t, err, ErrMissingRejectReason)

	reason := "bukti transfer tidak terbaca"
	rejected, err := VerifyPayment(db, p.PaymentID, "reject", nil, &reason)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRejected, rejected.PaymentStatus)
	require.NotNil(t, rejected.PaymentFailureReason)
	assert.Equal(t, reason, *rejected.PaymentFailureReason)
}

func TestVerifyPayment_NotFound(t *testing.T) {
	db := setupDB(t)
	user, _ := seedUserAndCourse(t, db)

	txn := "TXN123"
	_, err := VerifyPayment(db, user.UserID, "verify", &txn, nil)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

// Duplicate guard hanya melihat {pending, verified}: setelah reject, user
// boleh submit payment baru untuk course yang sama.
func TestCreatePayment_ResubmitAfterRejection(t *testing.T) {
	db := setupDB(t)
	user, course := seedUserAndCourse(t, db)
	p := createPendingPayment(t, db, user, course)

	reason := "nominal tidak sesuai"
	_, err := VerifyPayment(db, p.PaymentID, "reject", nil, &reason)
	require.NoError(t, err)

	second, err := CreatePayment(db, CreatePaymentInput{
		UserID:    user.UserID,
		CourseID:  course.CourseID,
		AmountIDR: 2999,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, second.PaymentStatus)
	assert.NotEqual(t, p.PaymentOrderID, second.PaymentOrderID)
}
