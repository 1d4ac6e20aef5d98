// file: internals/features/progress/progress/service/aggregator_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "kelasku_backend/internals/features/courses/courses/model"
	"kelasku_backend/internals/features/progress/progress/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&model.ProgressModel{},
	))
	return db
}

// course fixture: 1 chapter dengan 2 lecture + 1 project.
func seedCourse(t *testing.T, db *gorm.DB) (*userModel.UserModel, *courseModel.CourseModel) {
	t.Helper()

	user := &userModel.UserModel{UserName: "Andi", UserEmail: "andi@example.com", UserPassword: "x"}
	require.NoError(t, db.Create(user).Error)

	course := &courseModel.CourseModel{
		CourseTitle:    "Python Master",
		CourseCategory: courseModel.CourseCategoryMaster,
		CourseStatus:   courseModel.CourseStatusActive,
	}
	course.SetChapters([]courseModel.Chapter{
		{
			ChapterID:    "ch-1",
			ChapterTitle: "Dasar",
			ChapterOrder: 1,
			ChapterContent: []courseModel.Lecture{
				{LectureID: "lec-1", LectureOrder: 1},
				{LectureID: "lec-2", LectureOrder: 2},
			},
		},
	})
	course.SetProjects([]courseModel.Project{
		{ProjectID: "proj-1", ProjectTitle: "Kalkulator"},
	})
	require.NoError(t, db.Create(course).Error)
	return user, course
}

func TestEnsureProgress_BuildsSkeleton(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	p, err := EnsureProgress(db, user.UserID, course.CourseID)
	require.NoError(t, err)

	chapters := p.Chapters()
	require.Len(t, chapters, 1)
	assert.Equal(t, "ch-1", chapters[0].ChapterID)
	assert.Equal(t, 2, chapters[0].TotalLectures)
	assert.Zero(t, chapters[0].CompletedLectures)
	require.Len(t, chapters[0].Lectures, 2)
	assert.Equal(t, "lec-1", chapters[0].Lectures[0].LectureID)
	assert.False(t, chapters[0].Lectures[0].IsCompleted)

	projects := p.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "proj-1", projects[0].ProjectID)
	assert.False(t, projects[0].Submitted)

	assert.Zero(t, p.ProgressOverall)
}

func TestEnsureProgress_Idempotent(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	first, err := EnsureProgress(db, user.UserID, course.CourseID)
	require.NoError(t, err)
	second, err := EnsureProgress(db, user.UserID, course.CourseID)
	require.NoError(t, err)

	assert.Equal(t, first.ProgressID, second.ProgressID)

	var count int64
	require.NoError(t, db.Model(&model.ProgressModel{}).
		Where("progress_user_id = ? AND progress_course_id = ?", user.UserID, course.CourseID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureProgress_CourseNotFound(t *testing.T) {
	db := setupDB(t)
	user, _ := seedCourse(t, db)

	_, err := EnsureProgress(db, user.UserID, user.UserID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestRecordLectureProgress_CompletionAndOverall(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	p, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{
		TimeSpentSeconds: 120,
		WatchPercentage:  95,
		IsCompleted:      true,
	})
	require.NoError(t, err)

	ch := p.Chapters()[0]
	assert.Equal(t, 1, ch.CompletedLectures)
	assert.Equal(t, 50, ch.CompletionPercentage)
	assert.False(t, ch.IsCompleted)
	lec := ch.Lectures[0]
	assert.True(t, lec.IsCompleted)
	assert.NotNil(t, lec.CompletedAt)
	assert.Equal(t, 120, lec.TimeSpentSeconds)

	// lecture 50%, chapter 0%, attendance 0 (kosong), project 0% → 12.5 → 13
	assert.Equal(t, 13, p.ProgressOverall)
	assert.NotNil(t, p.ProgressLastAccessedAt)

	// lecture kedua selesai → chapter complete, semua skor lecture/chapter 100
	p, err = RecordLectureProgress(db, user.UserID, course.CourseID, "lec-2", LectureEventInput{IsCompleted: true})
	require.NoError(t, err)
	ch = p.Chapters()[0]
	assert.True(t, ch.IsCompleted)
	assert.Equal(t, 100, ch.CompletionPercentage)
	// lecture 100, chapter 100, attendance 0, project 0 → 50
	assert.Equal(t, 50, p.ProgressOverall)
}

func TestRecordLectureProgress_TimeAccumulates(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	_, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{TimeSpentSeconds: 60})
	require.NoError(t, err)
	p, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{TimeSpentSeconds: 45})
	require.NoError(t, err)

	assert.Equal(t, 105, p.Chapters()[0].Lectures[0].TimeSpentSeconds)
}

func TestRecordLectureProgress_WatchPercentageMonotonic(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	_, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{WatchPercentage: 80})
	require.NoError(t, err)

	// nilai lebih rendah tidak menurunkan watermark
	p, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{WatchPercentage: 30})
	require.NoError(t, err)
	assert.Equal(t, 80, p.Chapters()[0].Lectures[0].WatchPercentage)

	p, err = RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{WatchPercentage: 90})
	require.NoError(t, err)
	assert.Equal(t, 90, p.Chapters()[0].Lectures[0].WatchPercentage)
}

// Transisi completed kedua kalinya tidak menaikkan counter chapter lagi.
func TestRecordLectureProgress_CompleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	_, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{IsCompleted: true})
	require.NoError(t, err)
	p, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-1", LectureEventInput{IsCompleted: true})
	require.NoError(t, err)

	assert.Equal(t, 1, p.Chapters()[0].CompletedLectures)
}

func TestRecordLectureProgress_UnknownLecture(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	_, err := RecordLectureProgress(db, user.UserID, course.CourseID, "lec-nope", LectureEventInput{})
	assert.ErrorIs(t, err, ErrLectureNotFound)
}

func TestRecordAttendance_UpsertAndOverall(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	attended := true
	p, err := RecordAttendance(db, user.UserID, course.CourseID, "lec-1", &attended, 600)
	require.NoError(t, err)
	entries := p.Attendance()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Attended)
	assert.Equal(t, 600, entries[0].TotalSeconds)
	// lecture 0, chapter 0, attendance 100 (1/1), project 0 → 25
	assert.Equal(t, 25, p.ProgressOverall)

	// tanpa flag eksplisit: detik terakumulasi, attended tidak berubah
	p, err = RecordAttendance(db, user.UserID, course.CourseID, "lec-1", nil, 300)
	require.NoError(t, err)
	entries = p.Attendance()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Attended)
	assert.Equal(t, 900, entries[0].TotalSeconds)

	// flag eksplisit false meng-overwrite
	notAttended := false
	p, err = RecordAttendance(db, user.UserID, course.CourseID, "lec-1", &notAttended, 0)
	require.NoError(t, err)
	assert.False(t, p.Attendance()[0].Attended)
	assert.Zero(t, p.ProgressOverall)
}

func TestRecordProjectSubmission(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	grade := 88
	notes := "rapi"
	p, err := RecordProjectSubmission(db, user.UserID, course.CourseID, "proj-1", ProjectSubmissionInput{
		SubmissionFileURL: "https://files.example.com/kalkulator.zip",
		Grade:             &grade,
		ReviewerNotes:     &notes,
	})
	require.NoError(t, err)

	pj := p.Projects()[0]
	assert.True(t, pj.Submitted)
	assert.NotNil(t, pj.SubmittedAt)
	require.NotNil(t, pj.Grade)
	assert.Equal(t, 88, *pj.Grade)
	// lecture 0, chapter 0, attendance 0, project 100 → 25
	assert.Equal(t, 25, p.ProgressOverall)
}

func TestRecordProjectSubmission_UnknownProject(t *testing.T) {
	db := setupDB(t)
	user, course := seedCourse(t, db)

	_, err := RecordProjectSubmission(db, user.UserID, course.CourseID, "proj-nope", ProjectSubmissionInput{
		SubmissionFileURL: "https://files.example.com/x.zip",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

// Course tanpa konten: semua denominator 0 → overall tetap 0.
func TestOverall_EmptyDenominators(t *testing.T) {
	db := setupDB(t)
	user, _ := seedCourse(t, db)

	empty := &courseModel.CourseModel{
		CourseTitle:    "Kosong",
		CourseCategory: courseModel.CourseCategoryJunior,
		CourseStatus:   courseModel.CourseStatusDraft,
	}
	require.NoError(t, db.Create(empty).Error)

	p, err := EnsureProgress(db, user.UserID, empty.CourseID)
	require.NoError(t, err)
	assert.Zero(t, p.ProgressOverall)
	assert.Empty(t, p.Chapters())
	assert.Empty(t, p.Projects())
}
