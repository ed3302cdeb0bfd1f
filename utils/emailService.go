package utils

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier delivers email notifications. Delivery is best effort: callers log
// failures and carry on.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridNotifier sends email through the SendGrid v3 API.
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridNotifier(apiKey, fromAddr, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddr),
	}
}

func (n *SendGridNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail("", to), subject, htmlBody)
	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogNotifier only logs the message. Used when no email provider is configured.
type LogNotifier struct{}

func (LogNotifier) SendEmail(_ context.Context, to, subject, _ string) error {
	log.Printf("[EMAIL] to=%s subject=%q (no provider configured, not sent)", to, subject)
	return nil
}

// NewNotifier picks SendGrid when an API key is present and falls back to logging.
func NewNotifier(apiKey, fromAddr, fromName string) Notifier {
	if apiKey == "" {
		return LogNotifier{}
	}
	return NewSendGridNotifier(apiKey, fromAddr, fromName)
}

// getEmailTemplate wraps body in the shared DormAid layout.
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
		<div style="max-width: 560px; margin: auto; background: #ffffff; border-radius: 8px; padding: 30px;">
			<h2 style="color: #1e3a8a; margin-top: 0;">%s</h2>
			%s
			<p style="font-size: 12px; color: #999999; margin-top: 30px;">DormAid maintenance desk</p>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// AssignmentEmail builds the message a technician receives for a new task.
// Every interpolated value is HTML-escaped.
func AssignmentEmail(name, title, room, priority string) (subject, htmlBody string) {
	subject = "New maintenance task: " + title
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have been assigned <strong>%s</strong> in room <strong>%s</strong> (priority: %s).</p>
		<p>Open your task list to start working on it.</p>
	`, html.EscapeString(name), html.EscapeString(title), html.EscapeString(room), html.EscapeString(priority))
	return subject, getEmailTemplate("New task assigned", body)
}

// ResolvedEmail builds the message a student receives when a ticket is resolved.
func ResolvedEmail(name, title string) (subject, htmlBody string) {
	subject = "Your complaint has been resolved: " + title
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>The technician has marked <strong>%s</strong> as resolved.</p>
		<p>If the problem persists, please file a new complaint.</p>
	`, html.EscapeString(name), html.EscapeString(title))
	return subject, getEmailTemplate("Complaint resolved", body)
}
