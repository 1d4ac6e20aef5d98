// file: internals/features/finance/enrollments/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "kelasku_backend/internals/features/users/user/model"
)

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
}

type EnrollmentResponse struct {
	CourseID   uuid.UUID `json:"course_id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	Status     string    `json:"status"`
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type EnrollmentListResponse struct {
	Enrollments    []EnrollmentResponse `json:"enrollments"`
	TotalEnrolled  int                  `json:"total_enrolled"`
	TotalCompleted int                  `json:"total_completed"`
}

func FromUser(u *userModel.UserModel) EnrollmentListResponse {
	entries := u.EnrolledCourses()
	out := make([]EnrollmentResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EnrollmentResponse{
			CourseID:   e.CourseID,
			PaymentID:  e.PaymentID,
			Status:     e.Status,
			Progress:   e.Progress,
			EnrolledAt: e.EnrolledAt,
		})
	}
	return EnrollmentListResponse{
		Enrollments:    out,
		TotalEnrolled:  u.UserTotalCoursesEnrolled,
		TotalCompleted: u.UserCoursesCompleted,
	}
}
