// file: internals/features/progress/progress/model/progress_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =======================================================================
   Embedded docs — skeleton dicopy lazy dari content tree course saat
   pertama kali diakses. Semua lookup pakai authored id (chapter_id,
   lecture_id, project_id), bukan posisi array.
======================================================================= */

type LectureProgress struct {
	LectureID           string     `json:"lecture_id"`
	IsCompleted         bool       `json:"is_completed"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	TimeSpentSeconds    int        `json:"time_spent_seconds"`
	WatchPercentage     int        `json:"watch_percentage"` // monotonic watermark, tidak pernah turun
	LastWatchedPosition int        `json:"last_watched_position"`
}

type ChapterProgress struct {
	ChapterID            string            `json:"chapter_id"`
	IsCompleted          bool              `json:"is_completed"`
	CompletedLectures    int               `json:"completed_lectures"`
	TotalLectures        int               `json:"total_lectures"`
	CompletionPercentage int               `json:"completion_percentage"`
	Lectures             []LectureProgress `json:"lectures"`
}

type AttendanceEntry struct {
	LectureID    string `json:"lecture_id"`
	Attended     bool   `json:"attended"`
	TotalSeconds int    `json:"total_seconds"`
}

type ProjectProgress struct {
	ProjectID         string     `json:"project_id"`
	Submitted         bool       `json:"submitted"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	SubmissionFileURL string     `json:"submission_file_url,omitempty"`
	Grade             *int       `json:"grade,omitempty"`
	ReviewerNotes     *string    `json:"reviewer_notes,omitempty"`
}

/* ===================== Model ===================== */

// ProgressModel unik per pasangan (user, course).
type ProgressModel struct {
	ProgressID       uuid.UUID `gorm:"column:progress_id;type:uuid;primaryKey" json:"progress_id"`
	ProgressUserID   uuid.UUID `gorm:"column:progress_user_id;type:uuid;not null;uniqueIndex:idx_progress_user_course" json:"progress_user_id"`
	ProgressCourseID uuid.UUID `gorm:"column:progress_course_id;type:uuid;not null;uniqueIndex:idx_progress_user_course" json:"progress_course_id"`

	// 0-100, derived — selalu dihitung ulang, tidak pernah di-set langsung
	ProgressOverall int `gorm:"column:progress_overall;not null;default:0" json:"progress_overall"`

	ProgressChapters   datatypes.JSON `gorm:"column:progress_chapters;type:jsonb" json:"progress_chapters,omitempty"`
	ProgressAttendance datatypes.JSON `gorm:"column:progress_attendance;type:jsonb" json:"progress_attendance,omitempty"`
	ProgressProjects   datatypes.JSON `gorm:"column:progress_projects;type:jsonb" json:"progress_projects,omitempty"`

	ProgressLastAccessedAt *time.Time `gorm:"column:progress_last_accessed_at" json:"progress_last_accessed_at,omitempty"`

	ProgressCreatedAt time.Time      `gorm:"column:progress_created_at;autoCreateTime" json:"progress_created_at"`
	ProgressUpdatedAt time.Time      `gorm:"column:progress_updated_at;autoUpdateTime" json:"progress_updated_at"`
	ProgressDeletedAt gorm.DeletedAt `gorm:"column:progress_deleted_at;index" json:"progress_deleted_at,omitempty"`
}

func (ProgressModel) TableName() string { return "progresses" }

func (p *ProgressModel) BeforeCreate(tx *gorm.DB) error {
	if p.ProgressID == uuid.Nil {
		p.ProgressID = uuid.New()
	}
	return nil
}

/* ===================== JSON accessors ===================== */

func (p *ProgressModel) Chapters() []ChapterProgress {
	var out []ChapterProgress
	if len(p.ProgressChapters) > 0 {
		_ = json.Unmarshal(p.ProgressChapters, &out)
	}
	return out
}

func (p *ProgressModel) SetChapters(chapters []ChapterProgress) {
	raw, _ := json.Marshal(chapters)
	p.ProgressChapters = datatypes.JSON(raw)
}

func (p *ProgressModel) Attendance() []AttendanceEntry {
	var out []AttendanceEntry
	if len(p.ProgressAttendance) > 0 {
		_ = json.Unmarshal(p.ProgressAttendance, &out)
	}
	return out
}

func (p *ProgressModel) SetAttendance(entries []AttendanceEntry) {
	raw, _ := json.Marshal(entries)
	p.ProgressAttendance = datatypes.JSON(raw)
}

func (p *ProgressModel) Projects() []ProjectProgress {
	var out []ProjectProgress
	if len(p.ProgressProjects) > 0 {
		_ = json.Unmarshal(p.ProgressProjects, &out)
	}
	return out
}

func (p *ProgressModel) SetProjects(projects []ProjectProgress) {
	raw, _ := json.Marshal(projects)
	p.ProgressProjects = datatypes.JSON(raw)
}
