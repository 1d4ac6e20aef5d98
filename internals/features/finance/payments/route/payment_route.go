// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	"kelasku_backend/internals/features/finance/payments/controller"
	"kelasku_backend/internals/features/finance/payments/service"
	"kelasku_backend/internals/middlewares"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// PaymentUserRoutes: /api/u/payments (student & admin, sudah lewat AuthMiddleware).
func PaymentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db, service.NewSendGridMailer())

	payments := api.Group("/payments")
	payments.Post("/", middlewares.PaymentRateLimiter(), ctrl.CreatePayment)
	payments.Post("/gateway", middlewares.PaymentRateLimiter(), ctrl.CreateGatewayPayment)
	payments.Get("/", ctrl.ListMyPayments)
	payments.Get("/:id", ctrl.GetPaymentByID)
	payments.Get("/:id/screenshot", ctrl.GetPaymentScreenshot)
}

// PaymentAdminRoutes: /api/a/payments (admin only).
func PaymentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db, service.NewSendGridMailer())

	payments := api.Group("/payments",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengelola pembayaran"), constants.AdminOnly...),
	)
	payments.Get("/pending", ctrl.ListPendingPayments)
	payments.Patch("/:id/verify", ctrl.VerifyPayment)
}

// PaymentWebhookRoutes: /api/payments — endpoint publik untuk notifikasi gateway.
// Path ini masuk skipPaths AuthMiddleware.
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db, service.NewSendGridMailer())
	api.Post("/payments/midtrans/notification", ctrl.MidtransNotification)
}
