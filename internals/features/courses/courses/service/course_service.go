// file: internals/features/courses/courses/service/course_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/courses/courses/model"
	helper "kelasku_backend/internals/helpers"
)

var ErrCourseNotFound = errors.New("course tidak ditemukan")

// MutateCourse menjalankan mutasi content tree dengan disiplin
// single-writer-per-aggregate: satu transaksi + row lock pada course.
func MutateCourse(db *gorm.DB, courseID uuid.UUID, mutate func(course *model.CourseModel) error) (*model.CourseModel, error) {
	var course model.CourseModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.LockForUpdate(tx).
			First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if err := mutate(&course); err != nil {
			return err
		}
		return tx.Save(&course).Error
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// AddProject menambahkan definisi project ke course (admin).
func AddProject(course *model.CourseModel, p model.Project) error {
	projects := course.Projects()
	for _, existing := range projects {
		if existing.ProjectID == p.ProjectID {
			return errors.New("project_id sudah dipakai")
		}
	}
	course.SetProjects(append(projects, p))
	return nil
}

// AddSubmission menambahkan submission student untuk sebuah project.
// Gagal dengan ErrProjectNotFound bila project id tidak dikenal.
func AddSubmission(course *model.CourseModel, projectID string, userID uuid.UUID, fileURL string) (*model.Submission, error) {
	found := false
	for _, p := range course.Projects() {
		if p.ProjectID == projectID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrProjectNotFound
	}

	sub := model.Submission{
		SubmissionID: uuid.New(),
		ProjectID:    projectID,
		UserID:       userID,
		FileURL:      fileURL,
		SubmittedAt:  time.Now(),
	}
	course.SetSubmissions(append(course.Submissions(), sub))
	return &sub, nil
}
