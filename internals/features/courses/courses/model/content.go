package model

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================================
   Content tree (embedded di course_content / course_projects /
   course_submissions). ID di sini adalah authored identifier — diisi
   aplikasi, bukan storage — karena semua lookup memakai id ini.
======================================================================= */

type Lecture struct {
	LectureID       string `json:"lecture_id"`
	LectureTitle    string `json:"lecture_title"`
	LectureDuration string `json:"lecture_duration"` // format M{1,2}:SS
	LectureOrder    int    `json:"lecture_order"`
	LectureURL      string `json:"lecture_url"` // canonical embed URL
	IsPreviewFree   bool   `json:"is_preview_free"`
}

type Chapter struct {
	ChapterID      string    `json:"chapter_id"`
	ChapterTitle   string    `json:"chapter_title"`
	ChapterOrder   int       `json:"chapter_order"`
	ChapterContent []Lecture `json:"chapter_content"`
}

type Project struct {
	ProjectID          string     `json:"project_id"`
	ProjectTitle       string     `json:"project_title"`
	ProjectDescription string     `json:"project_description"`
	ProjectDueDate     *time.Time `json:"project_due_date,omitempty"`
}

type Submission struct {
	SubmissionID uuid.UUID  `json:"submission_id"`
	ProjectID    string     `json:"project_id"`
	UserID       uuid.UUID  `json:"user_id"`
	FileURL      string     `json:"file_url"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Grade        *int       `json:"grade,omitempty"`
	ReviewNotes  *string    `json:"review_notes,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

/* ===================== Derived views ===================== */

// ContentSummary adalah field turunan yang dihitung saat read, tidak disimpan.
type ContentSummary struct {
	TotalChapters       int       `json:"total_chapters"`
	TotalLectures       int       `json:"total_lectures"`
	FreePreviewLectures []Lecture `json:"free_preview_lectures"`
}

func SummarizeContent(chapters []Chapter) ContentSummary {
	sum := ContentSummary{
		TotalChapters:       len(chapters),
		FreePreviewLectures: []Lecture{},
	}
	for _, ch := range chapters {
		sum.TotalLectures += len(ch.ChapterContent)
		for _, lec := range ch.ChapterContent {
			if lec.IsPreviewFree {
				sum.FreePreviewLectures = append(sum.FreePreviewLectures, lec)
			}
		}
	}
	return sum
}
