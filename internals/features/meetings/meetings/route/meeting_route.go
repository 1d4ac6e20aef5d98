// file: internals/features/meetings/meetings/route/meeting_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	"kelasku_backend/internals/features/meetings/meetings/controller"
	"kelasku_backend/internals/features/meetings/meetings/service"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// MeetingUserRoutes: /api/u/meetings
func MeetingUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMeetingController(db, service.NewZoomClient())

	meetings := api.Group("/meetings")
	meetings.Get("/", ctrl.ListMeetings)
	meetings.Get("/:id", ctrl.GetMeetingByID)
}

// MeetingAdminRoutes: /api/a/meetings (teacher & admin boleh membuat sesi)
func MeetingAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMeetingController(db, service.NewZoomClient())

	meetings := api.Group("/meetings",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("membuat meeting"), constants.AdminAndUp...),
	)
	meetings.Post("/", ctrl.CreateMeeting)
}
