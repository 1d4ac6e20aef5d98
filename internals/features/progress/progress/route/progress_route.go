// file: internals/features/progress/progress/route/progress_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/progress/progress/controller"
)

// ProgressUserRoutes: /api/u/progress
func ProgressUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProgressController(db)

	progress := api.Group("/progress")
	progress.Get("/:course_id", ctrl.GetProgress)
	progress.Post("/:course_id/lectures/:lecture_id", ctrl.RecordLectureProgress)
	progress.Post("/:course_id/lectures/:lecture_id/attendance", ctrl.RecordAttendance)
	progress.Post("/:course_id/projects/:project_id", ctrl.RecordProjectSubmission)
}
