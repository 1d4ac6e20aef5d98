// file: internals/features/progress/progress/service/aggregator.go
package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	"kelasku_backend/internals/features/progress/progress/model"
	helper "kelasku_backend/internals/helpers"
)

var (
	ErrCourseNotFound   = errors.New("course tidak ditemukan")
	ErrProgressNotFound = errors.New("progress tidak ditemukan")
	ErrLectureNotFound  = errors.New("lecture tidak ditemukan di progress ini")
	ErrProjectNotFound  = errors.New("project tidak ditemukan di progress ini")
)

/* =======================================================================
   Initialize (lazy, idempotent)
======================================================================= */

// EnsureProgress mengembalikan progress (user, course); kalau belum ada,
// bangun skeleton dari content tree course. Idempotent: dipanggil dua kali
// berturut-turut mengembalikan dokumen yang sama (unique index jaga race).
func EnsureProgress(db *gorm.DB, userID, courseID uuid.UUID) (*model.ProgressModel, error) {
	var existing model.ProgressModel
	err := db.Where("progress_user_id = ? AND progress_course_id = ?", userID, courseID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	p := buildSkeleton(userID, &course)
	if err := db.Create(p).Error; err != nil {
		// Race dengan request lain yang init bareng: unique (user,course)
		// menang satu — ambil dokumen yang sudah jadi.
		if helper.IsUniqueViolation(err) {
			var won model.ProgressModel
			if ferr := db.Where("progress_user_id = ? AND progress_course_id = ?", userID, courseID).
				First(&won).Error; ferr == nil {
				return &won, nil
			}
		}
		return nil, err
	}
	return p, nil
}

// buildSkeleton menyalin semua authored id dari course dengan field
// completion masih nol.
func buildSkeleton(userID uuid.UUID, course *courseModel.CourseModel) *model.ProgressModel {
	p := &model.ProgressModel{
		ProgressUserID:   userID,
		ProgressCourseID: course.CourseID,
	}

	chapters := course.Chapters()
	chProgress := make([]model.ChapterProgress, 0, len(chapters))
	for _, ch := range chapters {
		lectures := make([]model.LectureProgress, 0, len(ch.ChapterContent))
		for _, lec := range ch.ChapterContent {
			lectures = append(lectures, model.LectureProgress{LectureID: lec.LectureID})
		}
		chProgress = append(chProgress, model.ChapterProgress{
			ChapterID:     ch.ChapterID,
			TotalLectures: len(ch.ChapterContent),
			Lectures:      lectures,
		})
	}
	p.SetChapters(chProgress)

	projects := course.Projects()
	pjProgress := make([]model.ProjectProgress, 0, len(projects))
	for _, pj := range projects {
		pjProgress = append(pjProgress, model.ProjectProgress{ProjectID: pj.ProjectID})
	}
	p.SetProjects(pjProgress)

	p.SetAttendance([]model.AttendanceEntry{})
	return p
}

/* =======================================================================
   Mutators — semuanya read-modify-write satu dokumen progress di dalam
   transaksi dengan row lock, lalu recompute overall + last accessed.
======================================================================= */

func mutateProgress(db *gorm.DB, userID, courseID uuid.UUID, fn func(p *model.ProgressModel) error) (*model.ProgressModel, error) {
	// Lazy init di luar lock supaya first-touch juga jalan.
	if _, err := EnsureProgress(db, userID, courseID); err != nil {
		return nil, err
	}

	var p model.ProgressModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.LockForUpdate(tx).
			Where("progress_user_id = ? AND progress_course_id = ?", userID, courseID).
			First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProgressNotFound
			}
			return err
		}

		if err := fn(&p); err != nil {
			return err
		}

		p.ProgressOverall = computeOverall(&p)
		now := time.Now()
		p.ProgressLastAccessedAt = &now
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type LectureEventInput struct {
	TimeSpentSeconds    int
	WatchPercentage     int
	LastWatchedPosition int
	IsCompleted         bool
}

// RecordLectureProgress mencari lecture lintas semua chapter (id tidak
// diindex global) dan menerapkan event nonton.
func RecordLectureProgress(db *gorm.DB, userID, courseID uuid.UUID, lectureID string, in LectureEventInput) (*model.ProgressModel, error) {
	return mutateProgress(db, userID, courseID, func(p *model.ProgressModel) error {
		chapters := p.Chapters()
		ci, li := findLecture(chapters, lectureID)
		if ci < 0 {
			return ErrLectureNotFound
		}

		ch := &chapters[ci]
		lec := &ch.Lectures[li]

		lec.TimeSpentSeconds += in.TimeSpentSeconds
		if in.WatchPercentage > lec.WatchPercentage {
			lec.WatchPercentage = in.WatchPercentage
		}
		if in.LastWatchedPosition > 0 {
			lec.LastWatchedPosition = in.LastWatchedPosition
		}

		// Counter chapter hanya naik pada transisi pertama ke completed.
		if in.IsCompleted && !lec.IsCompleted {
			now := time.Now()
			lec.IsCompleted = true
			lec.CompletedAt = &now
			ch.CompletedLectures++
			if ch.TotalLectures > 0 {
				ch.CompletionPercentage = ch.CompletedLectures * 100 / ch.TotalLectures
			}
			if ch.CompletedLectures >= ch.TotalLectures {
				ch.IsCompleted = true
			}
		}

		p.SetChapters(chapters)
		return nil
	})
}

// RecordAttendance upsert entry attendance per lecture id: create kalau
// belum ada, kalau sudah ada akumulasi detik; flag attended di-overwrite
// hanya saat nilai eksplisit dikirim (attended != nil).
func RecordAttendance(db *gorm.DB, userID, courseID uuid.UUID, lectureID string, attended *bool, totalSeconds int) (*model.ProgressModel, error) {
	return mutateProgress(db, userID, courseID, func(p *model.ProgressModel) error {
		entries := p.Attendance()
		idx := -1
		for i := range entries {
			if entries[i].LectureID == lectureID {
				idx = i
				break
			}
		}

		if idx < 0 {
			e := model.AttendanceEntry{LectureID: lectureID, TotalSeconds: totalSeconds}
			if attended != nil {
				e.Attended = *attended
			}
			entries = append(entries, e)
		} else {
			entries[idx].TotalSeconds += totalSeconds
			if attended != nil {
				entries[idx].Attended = *attended
			}
		}

		p.SetAttendance(entries)
		return nil
	})
}

type ProjectSubmissionInput struct {
	SubmissionFileURL string
	Grade             *int
	ReviewerNotes     *string
}

func RecordProjectSubmission(db *gorm.DB, userID, courseID uuid.UUID, projectID string, in ProjectSubmissionInput) (*model.ProgressModel, error) {
	return mutateProgress(db, userID, courseID, func(p *model.ProgressModel) error {
		projects := p.Projects()
		idx := -1
		for i := range projects {
			if projects[i].ProjectID == projectID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrProjectNotFound
		}

		now := time.Now()
		projects[idx].Submitted = true
		projects[idx].SubmittedAt = &now
		if in.SubmissionFileURL != "" {
			projects[idx].SubmissionFileURL = in.SubmissionFileURL
		}
		if in.Grade != nil {
			projects[idx].Grade = in.Grade
		}
		if in.ReviewerNotes != nil {
			projects[idx].ReviewerNotes = in.ReviewerNotes
		}

		p.SetProjects(projects)
		return nil
	})
}

/* =======================================================================
   Overall = round(mean dari empat sub-skor); sub-skor 0 kalau
   denominatornya 0.
======================================================================= */

func computeOverall(p *model.ProgressModel) int {
	chapters := p.Chapters()

	totalLectures, completedLectures := 0, 0
	totalChapters, completedChapters := len(chapters), 0
	for _, ch := range chapters {
		totalLectures += len(ch.Lectures)
		for _, lec := range ch.Lectures {
			if lec.IsCompleted {
				completedLectures++
			}
		}
		if ch.IsCompleted {
			completedChapters++
		}
	}

	attendance := p.Attendance()
	attendedCount := 0
	for _, a := range attendance {
		if a.Attended {
			attendedCount++
		}
	}

	projects := p.Projects()
	submittedCount := 0
	for _, pj := range projects {
		if pj.Submitted {
			submittedCount++
		}
	}

	lectureScore := ratio(completedLectures, totalLectures)
	chapterScore := ratio(completedChapters, totalChapters)
	attendanceScore := ratio(attendedCount, len(attendance))
	projectScore := ratio(submittedCount, len(projects))

	return int(math.Round((lectureScore + chapterScore + attendanceScore + projectScore) / 4))
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

func findLecture(chapters []model.ChapterProgress, lectureID string) (int, int) {
	for ci := range chapters {
		for li := range chapters[ci].Lectures {
			if chapters[ci].Lectures[li].LectureID == lectureID {
				return ci, li
			}
		}
	}
	return -1, -1
}
