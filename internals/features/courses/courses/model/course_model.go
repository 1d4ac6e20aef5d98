package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	CourseCategoryJunior   = "Junior"
	CourseCategoryExplorer = "Explorer"
	CourseCategoryMaster   = "Master"
)

const (
	CourseStatusDraft    = "draft"
	CourseStatusActive   = "active"
	CourseStatusInactive = "inactive"
)

/* ===================== Model ===================== */

type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	CourseTitle       string    `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseDescription string    `gorm:"column:course_description;type:text" json:"course_description"`
	CourseCategory    string    `gorm:"column:course_category;type:varchar(20);not null" json:"course_category"`
	CourseLevelNumber int       `gorm:"column:course_level_number;not null;default:1" json:"course_level_number"`
	CoursePriceIDR    int       `gorm:"column:course_price_idr;not null;check:course_price_idr >= 0" json:"course_price_idr"`
	CourseGradeMin    int       `gorm:"column:course_grade_min;not null;default:1" json:"course_grade_min"`
	CourseGradeMax    int       `gorm:"column:course_grade_max;not null;default:12" json:"course_grade_max"`
	CourseStatus      string    `gorm:"column:course_status;type:varchar(20);not null;default:'draft'" json:"course_status"`

	CourseThumbnailURL *string        `gorm:"column:course_thumbnail_url;type:text" json:"course_thumbnail_url,omitempty"`
	CourseTags         datatypes.JSON `gorm:"column:course_tags;type:jsonb" json:"course_tags,omitempty"`

	// Content tree (ordered chapters → ordered lectures), lihat content.go
	CourseContent     datatypes.JSON `gorm:"column:course_content;type:jsonb" json:"course_content,omitempty"`
	CourseProjects    datatypes.JSON `gorm:"column:course_projects;type:jsonb" json:"course_projects,omitempty"`
	CourseSubmissions datatypes.JSON `gorm:"column:course_submissions;type:jsonb" json:"course_submissions,omitempty"`

	CourseEnrollmentCount int `gorm:"column:course_enrollment_count;not null;default:0" json:"course_enrollment_count"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

/* ===================== JSON accessors ===================== */

func (m *CourseModel) Chapters() []Chapter {
	var out []Chapter
	if len(m.CourseContent) > 0 {
		_ = json.Unmarshal(m.CourseContent, &out)
	}
	return out
}

func (m *CourseModel) SetChapters(chapters []Chapter) {
	raw, _ := json.Marshal(chapters)
	m.CourseContent = datatypes.JSON(raw)
}

func (m *CourseModel) Projects() []Project {
	var out []Project
	if len(m.CourseProjects) > 0 {
		_ = json.Unmarshal(m.CourseProjects, &out)
	}
	return out
}

func (m *CourseModel) SetProjects(projects []Project) {
	raw, _ := json.Marshal(projects)
	m.CourseProjects = datatypes.JSON(raw)
}

func (m *CourseModel) Submissions() []Submission {
	var out []Submission
	if len(m.CourseSubmissions) > 0 {
		_ = json.Unmarshal(m.CourseSubmissions, &out)
	}
	return out
}

func (m *CourseModel) SetSubmissions(subs []Submission) {
	raw, _ := json.Marshal(subs)
	m.CourseSubmissions = datatypes.JSON(raw)
}

func (m *CourseModel) Tags() []string {
	var out []string
	if len(m.CourseTags) > 0 {
		_ = json.Unmarshal(m.CourseTags, &out)
	}
	return out
}

func (m *CourseModel) SetTags(tags []string) {
	raw, _ := json.Marshal(tags)
	m.CourseTags = datatypes.JSON(raw)
}
