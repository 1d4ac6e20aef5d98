// file: internals/features/progress/progress/dto/progress_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/progress/progress/model"
)

/* ===================== Requests ===================== */

type LectureProgressRequest struct {
	TimeSpentSeconds    int  `json:"time_spent_seconds" validate:"min=0"`
	WatchPercentage     int  `json:"watch_percentage" validate:"min=0,max=100"`
	LastWatchedPosition int  `json:"last_watched_position" validate:"min=0"`
	IsCompleted         bool `json:"is_completed"`
}

type AttendanceRequest struct {
	// pointer: nil berarti flag attended yang tersimpan tidak diubah
	Attended     *bool `json:"attended"`
	TotalSeconds int   `json:"total_seconds" validate:"min=0"`
}

type ProjectSubmissionRequest struct {
	SubmissionFileURL string  `json:"submission_file_url" validate:"required,url"`
	Grade             *int    `json:"grade" validate:"omitempty,min=0,max=100"`
	ReviewerNotes     *string `json:"reviewer_notes"`
}

/* ===================== Responses ===================== */

type ProgressResponse struct {
	ProgressID             uuid.UUID               `json:"progress_id"`
	ProgressUserID         uuid.UUID               `json:"progress_user_id"`
	ProgressCourseID       uuid.UUID               `json:"progress_course_id"`
	ProgressOverall        int                     `json:"progress_overall"`
	Chapters               []model.ChapterProgress `json:"chapters"`
	Attendance             []model.AttendanceEntry `json:"attendance"`
	Projects               []model.ProjectProgress `json:"projects"`
	ProgressLastAccessedAt *time.Time              `json:"progress_last_accessed_at,omitempty"`
}

func FromModel(p *model.ProgressModel) *ProgressResponse {
	return &ProgressResponse{
		ProgressID:             p.ProgressID,
		ProgressUserID:         p.ProgressUserID,
		ProgressCourseID:       p.ProgressCourseID,
		ProgressOverall:        p.ProgressOverall,
		Chapters:               p.Chapters(),
		Attendance:             p.Attendance(),
		Projects:               p.Projects(),
		ProgressLastAccessedAt: p.ProgressLastAccessedAt,
	}
}
