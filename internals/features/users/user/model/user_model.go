package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums ===================== */

const (
	EnrollmentStatusInProgress = "in-progress"
	EnrollmentStatusCompleted  = "completed"
)

/* ===================== Embedded docs ===================== */

// EnrolledCourse adalah satu entry di user_courses_enrolled (JSONB).
// Invariant: tidak boleh ada dua entry dengan course_id sama.
type EnrolledCourse struct {
	CourseID   uuid.UUID `json:"course_id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	Status     string    `json:"status"` // in-progress | completed
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

/* ===================== Model ===================== */

type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName     string    `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail    string    `gorm:"column:user_email;type:varchar(255);uniqueIndex;not null" json:"user_email"`
	UserPassword string    `gorm:"column:user_password;not null" json:"-"`
	UserRole     string    `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`
	UserGoogleID *string   `gorm:"column:user_google_id;type:varchar(255)" json:"user_google_id,omitempty"`
	UserIsActive bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	// Enrollment record (embedded, lihat invariant di EnrolledCourse)
	UserCoursesEnrolled      datatypes.JSON `gorm:"column:user_courses_enrolled;type:jsonb" json:"user_courses_enrolled,omitempty"`
	UserTotalCoursesEnrolled int            `gorm:"column:user_total_courses_enrolled;not null;default:0" json:"user_total_courses_enrolled"`
	UserCoursesCompleted     int            `gorm:"column:user_courses_completed;not null;default:0" json:"user_courses_completed"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	if u.UserRole == "" {
		u.UserRole = "student"
	}
	return nil
}

/* ===================== Helpers enrollment ===================== */

func (u *UserModel) EnrolledCourses() []EnrolledCourse {
	var out []EnrolledCourse
	if len(u.UserCoursesEnrolled) > 0 {
		_ = json.Unmarshal(u.UserCoursesEnrolled, &out)
	}
	return out
}

func (u *UserModel) SetEnrolledCourses(entries []EnrolledCourse) {
	raw, _ := json.Marshal(entries)
	u.UserCoursesEnrolled = datatypes.JSON(raw)
}

// FindEnrollment mengembalikan index entry untuk course, -1 kalau belum enrolled.
func (u *UserModel) FindEnrollment(courseID uuid.UUID) (int, []EnrolledCourse) {
	entries := u.EnrolledCourses()
	for i, e := range entries {
		if e.CourseID == courseID {
			return i, entries
		}
	}
	return -1, entries
}

func (u *UserModel) IsEnrolledIn(courseID uuid.UUID) bool {
	idx, _ := u.FindEnrollment(courseID)
	return idx >= 0
}
