package service

import (
	"fmt"
	"strings"

	"registrly/leads-service/internal/models"
)

// buildFollowUpEmail renders the campaign message for one recipient. The
// greeting and trademark reference degrade gracefully when personalization
// fields are missing.
func buildFollowUpEmail(r models.Recipient, subject string) models.EmailPayload {
	greeting := "Hello,"
	if name := strings.TrimSpace(r.Name); name != "" {
		greeting = fmt.Sprintf("Hello %s,", name)
	}

	markLine := "your trademark application"
	if tm := strings.TrimSpace(r.TrademarkName); tm != "" {
		markLine = fmt.Sprintf("your trademark application for \"%s\"", tm)
	}

	text := fmt.Sprintf(`%s

We noticed %s has not been completed yet. Your free search results are still available, and our team is ready to help you finish the registration.

Reply to this email or visit your dashboard to continue where you left off.

Best regards,
The Registrly Team`, greeting, markLine)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>%s</p>
  <p>We noticed %s has not been completed yet. Your free search results are still available, and our team is ready to help you finish the registration.</p>
  <p>Reply to this email or visit your dashboard to continue where you left off.</p>
  <p>Best regards,<br>The Registrly Team</p>
</div>`, greeting, markLine)

	return models.EmailPayload{
		To:       r.Email,
		Subject:  subject,
		Body:     text,
		HTMLBody: html,
	}
}

// buildConfirmationEmail renders the intake confirmation message.
func buildConfirmationEmail(search *models.Search) models.EmailPayload {
	text := fmt.Sprintf(`Hello %s,

Thank you for requesting a free trademark search for "%s". Our team is reviewing availability and you will receive your results shortly.

Your reference number is %s.

Best regards,
The Registrly Team`, search.Name, search.TrademarkName, search.ID)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Hello %s,</p>
  <p>Thank you for requesting a free trademark search for <strong>%s</strong>. Our team is reviewing availability and you will receive your results shortly.</p>
  <p>Your reference number is <strong>%s</strong>.</p>
  <p>Best regards,<br>The Registrly Team</p>
</div>`, search.Name, search.TrademarkName, search.ID)

	return models.EmailPayload{
		To:       search.Email,
		Subject:  "We received your trademark search request",
		Body:     text,
		HTMLBody: html,
	}
}

// buildReceiptEmail renders the payment confirmation message.
func buildReceiptEmail(search *models.Search) models.EmailPayload {
	text := fmt.Sprintf(`Hello %s,

Your payment was received and the registration process for "%s" has started. We will keep you updated on every milestone.

Your reference number is %s.

Best regards,
The Registrly Team`, search.Name, search.TrademarkName, search.ID)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Hello %s,</p>
  <p>Your payment was received and the registration process for <strong>%s</strong> has started. We will keep you updated on every milestone.</p>
  <p>Your reference number is <strong>%s</strong>.</p>
  <p>Best regards,<br>The Registrly Team</p>
</div>`, search.Name, search.TrademarkName, search.ID)

	return models.EmailPayload{
		To:       search.Email,
		Subject:  "Payment received - your registration is underway",
		Body:     text,
		HTMLBody: html,
	}
}
