package interfaces

import "context"

// INotifier abstracts the customer notification channel (SMTP in production).
//
// Notification failures are advisory: callers log them and carry on. A failed
// email must never roll back or block the status update that triggered it.
type INotifier interface {
	SendNotification(ctx context.Context, toEmail, subject, htmlBody string) error
}
