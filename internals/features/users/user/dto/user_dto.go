package dto

import (
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/users/user/model"
)

type UserResponse struct {
	UserID                   uuid.UUID              `json:"user_id"`
	UserName                 string                 `json:"user_name"`
	UserEmail                string                 `json:"user_email"`
	UserRole                 string                 `json:"user_role"`
	UserCoursesEnrolled      []model.EnrolledCourse `json:"user_courses_enrolled"`
	UserTotalCoursesEnrolled int                    `json:"user_total_courses_enrolled"`
	UserCoursesCompleted     int                    `json:"user_courses_completed"`
	UserCreatedAt            time.Time              `json:"user_created_at"`
}

type UpdateProfileRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=100"`
}

func ToUserResponse(u *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:                   u.UserID,
		UserName:                 u.UserName,
		UserEmail:                u.UserEmail,
		UserRole:                 u.UserRole,
		UserCoursesEnrolled:      u.EnrolledCourses(),
		UserTotalCoursesEnrolled: u.UserTotalCoursesEnrolled,
		UserCoursesCompleted:     u.UserCoursesCompleted,
		UserCreatedAt:            u.UserCreatedAt,
	}
}
