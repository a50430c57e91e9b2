package notifications

import (
	"context"
	"log"
)

// The real gateways are external collaborators. These console adapters
// keep the pipeline end-to-end runnable without SMTP or SMS credentials.

type consoleEmailService struct{}

func NewConsoleEmailService() EmailService {
	return consoleEmailService{}
}

func (consoleEmailService) Send(ctx context.Context, n *BookingNotification) error {
	log.Printf("📧 [email] to=%s subject=%q type=%s", n.RecipientEmail, n.Subject, n.Type)
	return nil
}

type consoleSMSService struct{}

func NewConsoleSMSService() SMSService {
	return consoleSMSService{}
}

func (consoleSMSService) Send(ctx context.Context, n *BookingNotification) error {
	log.Printf("📱 [sms] to=%s type=%s", n.RecipientPhone, n.Type)
	return nil
}
