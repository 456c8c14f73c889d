package paymentValidator

import (
	paymentController "lms/controllers/payment"
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func CapturePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(paymentController.CaptureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide a valid course ID!", nil)
		}

		c.Locals("validatedCapture", reqData)
		return c.Next()
	}
}

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(paymentController.VerifyRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment Failed: Missing parameters!", nil)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

func SuccessEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(paymentController.SuccessEmailRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide all the details!", nil)
		}

		c.Locals("validatedSuccessEmail", reqData)
		return c.Next()
	}
}
