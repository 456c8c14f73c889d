package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid
func SendEmail(to, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email to %s (%s)", to, subject)
		return nil
	}

	from := mail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// HTML wrapper shared by all transactional emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #161D29; padding: 30px; text-align: center; }
			.header h1 { color: #FFD60A; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #161D29; line-height: 1.6; }
			.content h2 { color: #161D29; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #FFD60A; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to LearnHub"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>LearnHub</strong>! Your account has been created successfully.</p>
		<p>Browse our course catalogue and start learning today.</p>
	`, name)

	go SendEmail(email, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendCourseEnrollmentEmail confirms enrollment into a course
func SendCourseEnrollmentEmail(email, name, courseName string) error {
	subject := "Successfully Enrolled into " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have been successfully enrolled into <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to your dashboard to start the first section.
		</div>
	`, name, courseName)

	return SendEmail(email, subject, getEmailTemplate("Enrollment Confirmed", body))
}

// SendPaymentReceivedEmail acknowledges a captured payment. Amount is in
// minor units, converted for display.
func SendPaymentReceivedEmail(email, name string, amount uint, orderID, paymentID string) error {
	subject := "Payment Received"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your payment of <strong>&#8377;%.2f</strong>.</p>
		<div class="info-box">
			Order ID: <strong>%s</strong><br>
			Payment ID: <strong>%s</strong>
		</div>
		<p>Your enrollment is being processed. You will receive a confirmation shortly.</p>
	`, name, float64(amount)/100, orderID, paymentID)

	return SendEmail(email, subject, getEmailTemplate("Payment Received", body))
}
