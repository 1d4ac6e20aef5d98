// file: internals/features/courses/courses/route/course_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	"kelasku_backend/internals/features/courses/courses/controller"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// CoursePublicRoutes: /api/public/courses — katalog tanpa token.
func CoursePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseUserController(db)

	courses := api.Group("/courses")
	courses.Get("/", ctrl.ListCourses)
	courses.Get("/:id", ctrl.GetCourseByID)
	courses.Get("/:id/content", ctrl.GetCourseContent)
}

// CourseUserRoutes: /api/u/courses — aksi student yang butuh login.
func CourseUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseUserController(db)

	courses := api.Group("/courses")
	courses.Post("/:id/submissions", ctrl.AddSubmission)
}

// CourseAdminRoutes: /api/a/courses — authoring content tree (admin only).
func CourseAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseAdminController(db)

	courses := api.Group("/courses",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen course"), constants.AdminOnly...),
	)
	courses.Post("/", ctrl.CreateCourse)
	courses.Patch("/:id", ctrl.UpdateCourse)

	courses.Post("/:id/chapters", ctrl.AddChapter)
	courses.Patch("/:id/chapters/:chapterId", ctrl.EditChapter)
	courses.Delete("/:id/chapters/:chapterId", ctrl.DeleteChapter)

	courses.Post("/:id/lectures", ctrl.AddLecture)
	courses.Patch("/:id/lectures/:lectureId", ctrl.EditLecture)
	courses.Delete("/:id/lectures/:lectureId", ctrl.DeleteLecture)

	courses.Post("/:id/projects", ctrl.AddProject)
}
