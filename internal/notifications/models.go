package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationTypePaymentReceived  NotificationType = "PAYMENT_RECEIVED"
	NotificationTypeRefundApproved   NotificationType = "REFUND_APPROVED"
	NotificationTypeRefundDenied     NotificationType = "REFUND_DENIED"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
	NotificationChannelSMS   NotificationChannel = "SMS"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
)

// BookingNotification is one outbox message about a booking, payment or
// refund event
type BookingNotification struct {
	ID       uuid.UUID             `json:"id"`
	Type     NotificationType      `json:"type"`
	Priority NotificationPriority  `json:"priority"`
	Channels []NotificationChannel `json:"channels"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientPhone string    `json:"recipient_phone,omitempty"`
	RecipientName  string    `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

type NotificationBuilder struct {
	notification *BookingNotification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &BookingNotification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			MaxRetries:   3,
			TemplateData: make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Priority = GetDefaultPriority(notType)
	nb.notification.Channels = GetDefaultChannels(notType)
	return nb
}

func (nb *NotificationBuilder) WithRecipient(userID uuid.UUID, email, phone, name string) *NotificationBuilder {
	nb.notification.RecipientID = userID
	nb.notification.RecipientEmail = email
	nb.notification.RecipientPhone = phone
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(data map[string]interface{}) *NotificationBuilder {
	nb.notification.TemplateData = data
	return nb
}

func (nb *NotificationBuilder) WithBookingContext(bookingID uuid.UUID) *NotificationBuilder {
	nb.notification.BookingID = &bookingID
	return nb
}

func (nb *NotificationBuilder) WithResourceContext(resourceID uuid.UUID) *NotificationBuilder {
	nb.notification.ResourceID = &resourceID
	return nb
}

func (nb *NotificationBuilder) Build() *BookingNotification {
	return nb.notification
}

// GetDefaultPriority maps a notification type to a priority
func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypePaymentReceived, NotificationTypeRefundApproved:
		return NotificationPriorityHigh
	case NotificationTypeBookingConfirmed, NotificationTypeBookingCancelled:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityLow
	}
}

// GetDefaultChannels maps a notification type to delivery channels
func GetDefaultChannels(notType NotificationType) []NotificationChannel {
	switch notType {
	case NotificationTypeBookingConfirmed, NotificationTypePaymentReceived:
		return []NotificationChannel{NotificationChannelEmail, NotificationChannelSMS}
	default:
		return []NotificationChannel{NotificationChannelEmail}
	}
}

// GetPartitionKey routes all of a recipient's messages to one partition
func (n *BookingNotification) GetPartitionKey() string {
	return n.RecipientID.String()
}

func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *BookingNotification) ShouldRetry() bool {
	return n.RetryCount < n.MaxRetries && n.Status == NotificationStatusFailed
}

func (n *BookingNotification) MarkSent() {
	now := time.Now()
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.UpdatedAt = now
}

func (n *BookingNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now()

	errorStr := err.Error()
	n.LastError = &errorStr
}
