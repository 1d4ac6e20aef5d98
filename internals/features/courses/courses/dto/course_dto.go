// file: internals/features/courses/courses/dto/course_dto.go
package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/courses/courses/model"
)

/* ===================== Course ===================== */

type CreateCourseRequest struct {
	CourseTitle       string   `json:"course_title" validate:"required,min=3,max=255"`
	CourseDescription string   `json:"course_description"`
	CourseCategory    string   `json:"course_category" validate:"required,oneof=Junior Explorer Master"`
	CourseLevelNumber int      `json:"course_level_number" validate:"required,min=1"`
	CoursePriceIDR    int      `json:"course_price_idr" validate:"min=0"`
	CourseGradeMin    int      `json:"course_grade_min" validate:"required,min=1,max=12"`
	CourseGradeMax    int      `json:"course_grade_max" validate:"required,min=1,max=12"`
	CourseThumbnail   *string  `json:"course_thumbnail_url"`
	CourseTags        []string `json:"course_tags"`
}

// Validate: aturan bisnis yang tidak tercover tag validator.
func (r *CreateCourseRequest) Validate() error {
	if r.CourseGradeMin > r.CourseGradeMax {
		return errors.New("course_grade_min tidak boleh lebih besar dari course_grade_max")
	}
	return nil
}

func (r *CreateCourseRequest) ToModel() *model.CourseModel {
	m := &model.CourseModel{
		CourseTitle:        r.CourseTitle,
		CourseDescription:  r.CourseDescription,
		CourseCategory:     r.CourseCategory,
		CourseLevelNumber:  r.CourseLevelNumber,
		CoursePriceIDR:     r.CoursePriceIDR,
		CourseGradeMin:     r.CourseGradeMin,
		CourseGradeMax:     r.CourseGradeMax,
		CourseStatus:       model.CourseStatusDraft,
		CourseThumbnailURL: r.CourseThumbnail,
	}
	if len(r.CourseTags) > 0 {
		m.SetTags(r.CourseTags)
	}
	return m
}

type UpdateCourseRequest struct {
	CourseTitle       *string  `json:"course_title" validate:"omitempty,min=3,max=255"`
	CourseDescription *string  `json:"course_description"`
	CoursePriceIDR    *int     `json:"course_price_idr" validate:"omitempty,min=0"`
	CourseStatus      *string  `json:"course_status" validate:"omitempty,oneof=draft active inactive"`
	CourseThumbnail   *string  `json:"course_thumbnail_url"`
	CourseTags        []string `json:"course_tags"`
}

func (r *UpdateCourseRequest) Apply(m *model.CourseModel) {
	if r.CourseTitle != nil {
		m.CourseTitle = *r.CourseTitle
	}
	if r.CourseDescription != nil {
		m.CourseDescription = *r.CourseDescription
	}
	if r.CoursePriceIDR != nil {
		m.CoursePriceIDR = *r.CoursePriceIDR
	}
	if r.CourseStatus != nil {
		m.CourseStatus = *r.CourseStatus
	}
	if r.CourseThumbnail != nil {
		m.CourseThumbnailURL = r.CourseThumbnail
	}
	if r.CourseTags != nil {
		m.SetTags(r.CourseTags)
	}
}

/* ===================== Content tree ===================== */

type AddChapterRequest struct {
	ChapterID    string `json:"chapter_id" validate:"required"`
	ChapterTitle string `json:"chapter_title" validate:"required,min=1,max=255"`
	ChapterOrder int    `json:"chapter_order" validate:"required,min=1"`
}

type EditChapterRequest struct {
	ChapterTitle *string `json:"chapter_title" validate:"omitempty,min=1,max=255"`
	ChapterOrder *int    `json:"chapter_order" validate:"omitempty,min=1"`
}

type AddLectureRequest struct {
	ChapterID       string `json:"chapter_id" validate:"required"`
	LectureID       string `json:"lecture_id" validate:"required"`
	LectureTitle    string `json:"lecture_title" validate:"required,min=1,max=255"`
	LectureDuration string `json:"lecture_duration" validate:"required"`
	LectureOrder    int    `json:"lecture_order" validate:"required,min=1"`
	LectureURL      string `json:"lecture_url" validate:"required"`
	IsPreviewFree   bool   `json:"is_preview_free"`
}

type EditLectureRequest struct {
	LectureTitle    *string `json:"lecture_title" validate:"omitempty,min=1,max=255"`
	LectureDuration *string `json:"lecture_duration"`
	LectureOrder    *int    `json:"lecture_order" validate:"omitempty,min=1"`
	LectureURL      *string `json:"lecture_url"`
	IsPreviewFree   *bool   `json:"is_preview_free"`
}

type AddProjectRequest struct {
	ProjectID          string     `json:"project_id" validate:"required"`
	ProjectTitle       string     `json:"project_title" validate:"required,min=1,max=255"`
	ProjectDescription string     `json:"project_description"`
	ProjectDueDate     *time.Time `json:"project_due_date"`
}

type AddSubmissionRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	FileURL   string `json:"file_url" validate:"required,url"`
}

/* ===================== Responses ===================== */

type CourseResponse struct {
	CourseID              uuid.UUID             `json:"course_id"`
	CourseTitle           string                `json:"course_title"`
	CourseDescription     string                `json:"course_description"`
	CourseCategory        string                `json:"course_category"`
	CourseLevelNumber     int                   `json:"course_level_number"`
	CoursePriceIDR        int                   `json:"course_price_idr"`
	CourseGradeMin        int                   `json:"course_grade_min"`
	CourseGradeMax        int                   `json:"course_grade_max"`
	CourseStatus          string                `json:"course_status"`
	CourseThumbnailURL    *string               `json:"course_thumbnail_url,omitempty"`
	CourseTags            []string              `json:"course_tags"`
	CourseEnrollmentCount int                   `json:"course_enrollment_count"`
	ContentSummary        model.ContentSummary  `json:"content_summary"`
	CourseContent         []model.Chapter       `json:"course_content,omitempty"`
	CourseProjects        []model.Project       `json:"course_projects,omitempty"`
	CourseCreatedAt       time.Time             `json:"course_created_at"`
}

// ToCourseResponse menghitung field turunan on the fly (tidak disimpan).
func ToCourseResponse(m *model.CourseModel, includeContent bool) *CourseResponse {
	chapters := m.Chapters()
	resp := &CourseResponse{
		CourseID:              m.CourseID,
		CourseTitle:           m.CourseTitle,
		CourseDescription:     m.CourseDescription,
		CourseCategory:        m.CourseCategory,
		CourseLevelNumber:     m.CourseLevelNumber,
		CoursePriceIDR:        m.CoursePriceIDR,
		CourseGradeMin:        m.CourseGradeMin,
		CourseGradeMax:        m.CourseGradeMax,
		CourseStatus:          m.CourseStatus,
		CourseThumbnailURL:    m.CourseThumbnailURL,
		CourseTags:            m.Tags(),
		CourseEnrollmentCount: m.CourseEnrollmentCount,
		ContentSummary:        model.SummarizeContent(chapters),
		CourseCreatedAt:       m.CourseCreatedAt,
	}
	if includeContent {
		resp.CourseContent = chapters
		resp.CourseProjects = m.Projects()
	}
	return resp
}
