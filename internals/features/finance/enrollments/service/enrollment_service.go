// file: internals/features/finance/enrollments/service/enrollment_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	paymentModel "kelasku_backend/internals/features/finance/payments/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

var (
	ErrUserNotFound       = errors.New("user tidak ditemukan")
	ErrCourseNotFound     = errors.New("course tidak ditemukan")
	ErrEnrollmentNotFound = errors.New("enrollment tidak ditemukan")
	ErrAlreadyEnrolled    = errors.New("user sudah terdaftar di course ini")
	// ErrPaymentRequired dibalas sebagai Forbidden{requires_payment:true}
	ErrPaymentRequired = errors.New("butuh pembayaran terverifikasi untuk enroll")
)

// AppendEnrollment menambahkan entry enrollment pada user (idempotent: kalau
// sudah enrolled, no-op) dan menaikkan counter user + course. Harus dipanggil
// di dalam transaksi — dipakai oleh verify payment dan endpoint enroll.
func AppendEnrollment(tx *gorm.DB, userID, courseID, paymentID uuid.UUID) error {
	var user userModel.UserModel
	if err := helper.LockForUpdate(tx).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Idempotent: re-check "already enrolled" sebelum append (crash recovery
	// boleh memanggil ulang tanpa duplikasi entry).
	if user.IsEnrolledIn(courseID) {
		return nil
	}

	entries := user.EnrolledCourses()
	entries = append(entries, userModel.EnrolledCourse{
		CourseID:   courseID,
		PaymentID:  paymentID,
		Status:     userModel.EnrollmentStatusInProgress,
		Progress:   0,
		EnrolledAt: time.Now(),
	})
	user.SetEnrolledCourses(entries)
	user.UserTotalCoursesEnrolled = len(entries)

	if err := tx.Save(&user).Error; err != nil {
		return err
	}

	var course courseModel.CourseModel
	if err := helper.LockForUpdate(tx).First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	course.CourseEnrollmentCount++
	return tx.Save(&course).Error
}

// Enroll: butuh payment berstatus verified untuk pasangan (user, course).
func Enroll(db *gorm.DB, userID, courseID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var payment paymentModel.PaymentModel
		if err := tx.Where(
			"payment_user_id = ? AND payment_course_id = ? AND payment_status = ?",
			userID, courseID, paymentModel.PaymentStatusVerified,
		).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentRequired
			}
			return err
		}

		if err := helper.LockForUpdate(tx).First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.IsEnrolledIn(courseID) {
			return ErrAlreadyEnrolled
		}

		if err := AppendEnrollment(tx, userID, courseID, payment.PaymentID); err != nil {
			return err
		}
		// reload supaya caller lihat entry terbaru
		return tx.First(&user, "user_id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CompleteCourse membalik status enrollment ke completed dan menghitung ulang
// user_courses_completed dari entries (bukan increment buta).
func CompleteCourse(db *gorm.DB, userID, courseID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.LockForUpdate(tx).First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		idx, entries := user.FindEnrollment(courseID)
		if idx < 0 {
			return ErrEnrollmentNotFound
		}

		entries[idx].Status = userModel.EnrollmentStatusCompleted
		entries[idx].Progress = 100
		user.SetEnrolledCourses(entries)

		completed := 0
		for _, e := range entries {
			if e.Status == userModel.EnrollmentStatusCompleted {
				completed++
			}
		}
		user.UserCoursesCompleted = completed

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
