// file: internals/features/finance/enrollments/service/enrollment_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	paymentModel "kelasku_backend/internals/features/finance/payments/model"
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
		&paymentModel.PaymentModel{},
	))
	return db
}

func seed(t *testing.T, db *gorm.DB, paymentStatus string) (*userModel.UserModel, *courseModel.CourseModel, *paymentModel.PaymentModel) {
	t.Helper()

	user := &userModel.UserModel{UserName: "Sari", UserEmail: "sari@example.com", UserPassword: "x"}
	require.NoError(t, db.Create(user).Error)

	course := &courseModel.CourseModel{
		CourseTitle:    "Robotik Explorer",
		CourseCategory: courseModel.CourseCategoryExplorer,
		CoursePriceIDR: 4999,
		CourseStatus:   courseModel.CourseStatusActive,
	}
	require.NoError(t, db.Create(course).Error)

	payment := &paymentModel.PaymentModel{
		PaymentUserID:    user.UserID,
		PaymentCourseID:  course.CourseID,
		PaymentAmountIDR: 4999,
		PaymentCurrency:  "IDR",
		PaymentStatus:    paymentStatus,
		PaymentMethod:    paymentModel.PaymentMethodManual,
	}
	require.NoError(t, db.Create(payment).Error)
	return user, course, payment
}

func TestEnroll_RequiresVerifiedPayment(t *testing.T) {
	db := setupDB(t)
	user, course, _ := seed(t, db, paymentModel.PaymentStatusPending)

	_, err := Enroll(db, user.UserID, course.CourseID)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	// daftar course user tidak berubah
	var reloaded userModel.UserModel
	require.NoError(t, db.First(&reloaded, "user_id = ?", user.UserID).Error)
	assert.Empty(t, reloaded.EnrolledCourses())
	assert.Zero(t, reloaded.UserTotalCoursesEnrolled)
}

func TestEnroll_Success(t *testing.T) {
	db := setupDB(t)
	user, course, payment := seed(t, db, paymentModel.PaymentStatusVerified)

	enrolled, err := Enroll(db, user.UserID, course.CourseID)
	require.NoError(t, err)

	entries := enrolled.EnrolledCourses()
	require.Len(t, entries, 1)
	assert.Equal(t, course.CourseID, entries[0].CourseID)
	assert.Equal(t, payment.PaymentID, entries[0].PaymentID)
	assert.Equal(t, userModel.EnrollmentStatusInProgress, entries[0].Status)
	assert.Equal(t, 1, enrolled.UserTotalCoursesEnrolled)

	var reloadedCourse courseModel.CourseModel
	require.NoError(t, db.First(&reloadedCourse, "course_id = ?", course.CourseID).Error)
	assert.Equal(t, 1, reloadedCourse.CourseEnrollmentCount)
}

func TestEnroll_DuplicateConflict(t *testing.T) {
	db := setupDB(t)
	user, course, _ := seed(t, db, paymentModel.PaymentStatusVerified)

	_, err := Enroll(db, user.UserID, course.CourseID)
	require.NoError(t, err)

	_, err = Enroll(db, user.UserID, course.CourseID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// tepat satu entry untuk course itu
	var reloaded userModel.UserModel
	require.NoError(t, db.First(&reloaded, "user_id = ?", user.UserID).Error)
	count := 0
	for _, e := range reloaded.EnrolledCourses() {
		if e.CourseID == course.CourseID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// AppendEnrollment dipanggil ulang (crash recovery) tidak menduplikasi entry
// dan tidak menaikkan counter dua kali.
func TestAppendEnrollment_Idempotent(t *testing.T) {
	db := setupDB(t)
	user, course, payment := seed(t, db, paymentModel.PaymentStatusVerified)

	require.NoError(t, AppendEnrollment(db, user.UserID, course.CourseID, payment.PaymentID))
	require.NoError(t, AppendEnrollment(db, user.UserID, course.CourseID, payment.PaymentID))

	var reloaded userModel.UserModel
	require.NoError(t, db.First(&reloaded, "user_id = ?", user.UserID).Error)
	assert.Len(t, reloaded.EnrolledCourses(), 1)
	assert.Equal(t, 1, reloaded.UserTotalCoursesEnrolled)

	var reloadedCourse courseModel.CourseModel
	require.NoError(t, db.First(&reloadedCourse, "course_id = ?", course.CourseID).Error)
	assert.Equal(t, 1, reloadedCourse.CourseEnrollmentCount)
}

func TestCompleteCourse(t *testing.T) {
	db := setupDB(t)
	user, course, _ := seed(t, db, paymentModel.PaymentStatusVerified)

	_, err := Enroll(db, user.UserID, course.CourseID)
	require.NoError(t, err)

	completed, err := CompleteCourse(db, user.UserID, course.CourseID)
	require.NoError(t, err)

	entries := completed.EnrolledCourses()
	require.Len(t, entries, 1)
	assert.Equal(t, userModel.EnrollmentStatusCompleted, entries[0].Status)
	assert.Equal(t, 100, entries[0].Progress)
	assert.Equal(t, 1, completed.UserCoursesCompleted)
}

func TestCompleteCourse_NotEnrolled(t *testing.T) {
	db := setupDB(t)
	user, course, _ := seed(t, db, paymentModel.PaymentStatusVerified)

	_, err := CompleteCourse(db, user.UserID, course.CourseID)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
