package utils

import (
	"encoding/json"
	"lms/database"
	"lms/models"
	"lms/service"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// A payment that keeps failing enrollment is marked ABANDONED after this
// many retries instead of being re-queued forever
const maxEnrollAttempts = 5

// logReconciler logs reconciler events with timestamp
func logReconciler(message string) {
	log.Printf("[PAYMENT-RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcilePayments retries enrollment for payments whose signature verified
// but whose enrollment never completed. Payments still VERIFIED after a grace
// window are picked up too, in case the process died mid-enrollment.
func reconcilePayments() {
	db := database.Database.Db
	grace := time.Now().Add(-10 * time.Minute)

	var stuck []models.Payment
	if err := db.Where("is_deleted = ? AND (status = ? OR (status = ? AND verified_at <= ?))",
		false, models.PaymentStatusEnrollFailed, models.PaymentStatusVerified, grace).
		Find(&stuck).Error; err != nil {
		logReconciler("Error fetching stuck payments: " + err.Error())
		return
	}

	for _, payment := range stuck {
		var courseIDs []uint
		if err := json.Unmarshal([]byte(payment.CoursesRaw), &courseIDs); err != nil || len(courseIDs) == 0 {
			db.Model(&payment).Update("status", models.PaymentStatusAbandoned)
			logReconciler("Payment " + payment.OrderID + " has no usable course list, abandoning")
			continue
		}

		enrolled, err := service.EnrollCourses(db, courseIDs, payment.UserID)
		if err != nil {
			attempts := payment.EnrollAttempts + 1
			status := models.PaymentStatusEnrollFailed
			if attempts >= maxEnrollAttempts {
				status = models.PaymentStatusAbandoned
				logReconciler("Giving up on order " + payment.OrderID + " after " + strconv.Itoa(int(attempts)) + " attempts: " + err.Error())
			} else {
				logReconciler("Retry failed for order " + payment.OrderID + ": " + err.Error())
			}
			db.Model(&payment).Updates(map[string]interface{}{
				"status":          status,
				"enroll_attempts": attempts,
			})
			continue
		}

		db.Model(&payment).Update("status", models.PaymentStatusEnrolled)
		logReconciler("Recovered enrollment for order " + payment.OrderID)

		var user models.User
		if err := db.Select("name, email").First(&user, payment.UserID).Error; err == nil && user.Email != "" {
			for _, course := range enrolled {
				go SendCourseEnrollmentEmail(user.Email, user.Name, course.Title)
			}
		}
	}
}

// StartPaymentReconciler schedules the reconciliation job
func StartPaymentReconciler() {
	c := cron.New()

	if _, err := c.AddFunc("@every 5m", reconcilePayments); err != nil {
		log.Fatalf("Failed to schedule payment reconciler: %v", err)
	}

	c.Start()
	logReconciler("Payment reconciler started (every 5 minutes)")
}
