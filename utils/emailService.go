package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through Sendgrid
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Sendgrid not configured, skipping email %q to %v", subject, to)
		return nil
	}

	from := sgmail.NewEmail("Course Platform", config.AppConfig.EmailSender)

	message := sgmail.NewV3Mail()
	message.SetFrom(from)
	message.AddContent(sgmail.NewContent("text/html", htmlBody))

	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the platform HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0F172A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0F172A; line-height: 1.6; }
			.content h2 { color: #0F172A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #0EA5E9; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #0EA5E9; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSE PLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Course Platform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Course Platform"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome aboard! Your account has been successfully created.</p>
		<p>You can now browse the catalog, enroll in courses and track your progress from your dashboard.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Purchase Confirmation
func SendPurchaseEmail(email, name, courseTitle string) {
	subject := "Enrollment Confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your enrollment in <strong>%s</strong> is confirmed.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to your dashboard and start with chapter one.
		</div>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// 3. Course Published (sent to the instructor)
func SendCoursePublishedEmail(email, name, courseTitle string) {
	subject := "Course Published: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your course <strong>%s</strong> is now live in the catalog.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Live", body))
}
