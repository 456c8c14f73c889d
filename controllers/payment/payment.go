package paymentController

import (
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/gateway"
	"lms/middleware"
	"lms/models"
	"lms/service"
	"lms/utils"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CapturePayment validates eligibility and creates a Razorpay order for a
// course. No local state is written; the order lives on the gateway until the
// callback comes back through VerifyPayment.
func CapturePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCapture").(*CaptureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide a valid course ID!", nil)
	}

	db := database.Database.Db

	// Course must exist and be published
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?", reqData.CourseID, false, models.CourseStatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Could not find the course!", nil)
	}

	// Already enrolled: reject before touching the gateway
	if service.IsEnrolled(db, course.ID, userID) {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Student is already enrolled!", nil)
	}

	// Gateway wants the amount in minor units (paise)
	amount := course.Price * 100
	receipt := "rcpt_" + uuid.NewString()

	order, err := gateway.CreateOrder(amount, "INR", receipt, map[string]string{
		"courseId": strconvUint(course.ID),
		"userId":   strconvUint(userID),
	})
	if err != nil {
		log.Printf("Order creation failed for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not initiate order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", fiber.Map{
		"courseName":        course.Title,
		"courseDescription": course.Description,
		"thumbnail":         course.Thumbnail,
		"orderId":           order.ID,
		"currency":          order.Currency,
		"amount":            order.Amount,
	})
}

// VerifyPayment checks the Razorpay callback signature and, on success,
// enrolls the user into the paid courses. The (order, payment) ID pair keys
// the payment record, so a replayed callback returns success without
// enrolling twice. A replay is only honoured for the user and course list
// the payment was recorded with; a retry after a failed enrollment works
// from the stored row, never the incoming request.
func VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVerify").(*VerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment Failed: Missing parameters!", nil)
	}

	if !gateway.VerifySignature(config.AppConfig.RazorpaySecret, reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment Failed: Signature mismatch!", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	err := db.Where("order_id = ? AND payment_id = ? AND is_deleted = ?", reqData.OrderID, reqData.PaymentID, false).First(&payment).Error
	if err != nil {
		coursesRaw, _ := json.Marshal(reqData.Courses)

		// Total in minor units, for reporting
		var totalPrice int64
		db.Model(&models.Course{}).Where("id IN ? AND is_deleted = ?", reqData.Courses, false).
			Select("COALESCE(SUM(price), 0)").Scan(&totalPrice)

		payment = models.Payment{
			UserID:     userID,
			OrderID:    reqData.OrderID,
			PaymentID:  reqData.PaymentID,
			Signature:  reqData.Signature,
			Amount:     uint(totalPrice) * 100,
			CoursesRaw: string(coursesRaw),
			Status:     models.PaymentStatusVerified,
			VerifiedAt: time.Now(),
		}
		if cerr := db.Create(&payment).Error; cerr != nil {
			// Lost the race against a concurrent callback for the same pair.
			// The unique index keeps exactly one row; load it and continue
			// as a replay.
			if rerr := db.Where("order_id = ? AND payment_id = ?", reqData.OrderID, reqData.PaymentID).First(&payment).Error; rerr != nil {
				log.Printf("Failed to record payment %s: %v", reqData.PaymentID, cerr)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
			}
		}
	}

	// The signature only covers the (order, payment) pair, so replays must
	// match the recorded owner and course list
	if payment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Payment belongs to a different account!", nil)
	}

	var courseIDs []uint
	if err := json.Unmarshal([]byte(payment.CoursesRaw), &courseIDs); err != nil || len(courseIDs) == 0 {
		db.Model(&payment).Update("status", models.PaymentStatusEnrollFailed)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment verified but failed to enroll!", nil)
	}
	if !sameCourseSet(courseIDs, reqData.Courses) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment Failed: Course list mismatch!", nil)
	}

	if payment.Status == models.PaymentStatusEnrolled {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already verified!", nil)
	}

	enrolled, err := service.EnrollCourses(db, courseIDs, payment.UserID)
	if err != nil {
		db.Model(&payment).Updates(map[string]interface{}{
			"status":          models.PaymentStatusEnrollFailed,
			"enroll_attempts": payment.EnrollAttempts + 1,
		})
		log.Printf("Enrollment error for order %s: %v", reqData.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment verified but failed to enroll!", nil)
	}

	db.Model(&payment).Update("status", models.PaymentStatusEnrolled)

	// Confirmation emails are best-effort; enrollment already committed
	var user models.User
	if err := db.Select("name, email").First(&user, payment.UserID).Error; err == nil && user.Email != "" {
		for _, course := range enrolled {
			go utils.SendCourseEnrollmentEmail(user.Email, user.Name, course.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment Verified!", nil)
}

// sameCourseSet reports whether two course ID lists hold the same IDs,
// ignoring order
func sameCourseSet(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]uint(nil), a...)
	bs := append([]uint(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// SendPaymentSuccessEmail sends the payment receipt email for a captured
// payment
func SendPaymentSuccessEmail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSuccessEmail").(*SuccessEmailRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide all the details!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := utils.SendPaymentReceivedEmail(user.Email, user.Name, reqData.Amount, reqData.OrderID, reqData.PaymentID); err != nil {
		log.Printf("Error sending payment success email: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not send email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email sent successfully!", nil)
}

func strconvUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
