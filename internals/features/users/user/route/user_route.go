// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	"kelasku_backend/internals/features/users/user/controller"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// UserRoutes: /api/u/users
func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Patch("/me", ctrl.UpdateMe)
}

// UserAdminRoutes: /api/a/users
func UserAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := api.Group("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly...),
	)
	users.Get("/", ctrl.ListUsers)
}
