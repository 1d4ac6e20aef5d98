// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoute "kelasku_backend/internals/features/courses/courses/route"
	enrollmentRoute "kelasku_backend/internals/features/finance/enrollments/route"
	paymentRoute "kelasku_backend/internals/features/finance/payments/route"
	meetingRoute "kelasku_backend/internals/features/meetings/meetings/route"
	progressRoute "kelasku_backend/internals/features/progress/progress/route"
	authRoute "kelasku_backend/internals/features/users/auth/route"
	userRoute "kelasku_backend/internals/features/users/user/route"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan semua route aplikasi.
//
//	/api          → publik (auth, katalog, webhook gateway)
//	/api/u        → semua user login (student/teacher/admin)
//	/api/a        → login + role check per-group (admin / teacher)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// ---------- publik ----------
	authRoute.AuthPublicRoutes(api, db)
	paymentRoute.PaymentWebhookRoutes(api, db)

	public := api.Group("/public")
	courseRoute.CoursePublicRoutes(public, db)

	// ---------- user (wajib token) ----------
	user := api.Group("/u", authMiddleware.AuthMiddleware(db))
	authRoute.AuthUserRoutes(user, db)
	userRoute.UserRoutes(user, db)
	courseRoute.CourseUserRoutes(user, db)
	paymentRoute.PaymentUserRoutes(user, db)
	enrollmentRoute.EnrollmentUserRoutes(user, db)
	progressRoute.ProgressUserRoutes(user, db)
	meetingRoute.MeetingUserRoutes(user, db)

	// ---------- admin/teacher (token + role) ----------
	admin := api.Group("/a", authMiddleware.AuthMiddleware(db))
	userRoute.UserAdminRoutes(admin, db)
	courseRoute.CourseAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	meetingRoute.MeetingAdminRoutes(admin, db)
}
