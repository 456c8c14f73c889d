package paymentRoutes

import (
	controllers "lms/controllers/payment"
	"lms/middleware"
	validators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up order capture and verification routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/capture", middleware.JWTMiddleware, middleware.IsStudent, validators.CapturePayment(), controllers.CapturePayment)
	paymentGroup.Post("/verify", middleware.JWTMiddleware, middleware.IsStudent, validators.VerifyPayment(), controllers.VerifyPayment)
	paymentGroup.Post("/success-email", middleware.JWTMiddleware, middleware.IsStudent, validators.SuccessEmail(), controllers.SendPaymentSuccessEmail)
}
