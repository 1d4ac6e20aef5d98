// file: internals/features/finance/enrollments/route/enrollment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/finance/enrollments/controller"
)

// EnrollmentUserRoutes: /api/u/enrollments
func EnrollmentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEnrollmentController(db)

	enrollments := api.Group("/enrollments")
	enrollments.Post("/", ctrl.Enroll)
	enrollments.Get("/", ctrl.ListMyEnrollments)
	enrollments.Post("/:course_id/complete", ctrl.CompleteCourse)
}
