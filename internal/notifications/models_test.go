package notifications

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationBuilder(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(userID, "asha@hotelio.test", "+919800000002", "Asha Patel").
		WithBookingContext(bookingID).
		WithSubject("Booking HTL-20301001-ABCDEF confirmed").
		WithTemplateData(map[string]interface{}{"booking_number": "HTL-20301001-ABCDEF"}).
		Build()

	assert.Equal(t, NotificationTypeBookingConfirmed, notification.Type)
	assert.Equal(t, NotificationPriorityMedium, notification.Priority)
	assert.ElementsMatch(t,
		[]NotificationChannel{NotificationChannelEmail, NotificationChannelSMS},
		notification.Channels)
	assert.Equal(t, userID, notification.RecipientID)
	require.NotNil(t, notification.BookingID)
	assert.Equal(t, bookingID, *notification.BookingID)
	assert.Equal(t, NotificationStatusPending, notification.Status)
	assert.Equal(t, 3, notification.MaxRetries)
	assert.Equal(t, userID.String(), notification.GetPartitionKey())
}

func TestDefaultPriorityAndChannels(t *testing.T) {
	assert.Equal(t, NotificationPriorityHigh, GetDefaultPriority(NotificationTypePaymentReceived))
	assert.Equal(t, NotificationPriorityHigh, GetDefaultPriority(NotificationTypeRefundApproved))
	assert.Equal(t, NotificationPriorityMedium, GetDefaultPriority(NotificationTypeBookingCancelled))
	assert.Equal(t, NotificationPriorityLow, GetDefaultPriority(NotificationTypeRefundDenied))

	assert.Equal(t, []NotificationChannel{NotificationChannelEmail},
		GetDefaultChannels(NotificationTypeRefundDenied))
	assert.Len(t, GetDefaultChannels(NotificationTypePaymentReceived), 2)
}

func TestNotificationRetryLifecycle(t *testing.T) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingCancelled).
		Build()

	assert.False(t, notification.ShouldRetry())

	notification.MarkFailed(errors.New("smtp timeout"))
	assert.True(t, notification.ShouldRetry())
	require.NotNil(t, notification.LastError)
	assert.Equal(t, "smtp timeout", *notification.LastError)

	notification.RetryCount = notification.MaxRetries
	assert.False(t, notification.ShouldRetry())

	notification.MarkSent()
	assert.Equal(t, NotificationStatusSent, notification.Status)
	assert.NotNil(t, notification.SentAt)
	assert.False(t, notification.ShouldRetry())
}

func TestNotificationRoundTrip(t *testing.T) {
	original := NewNotificationBuilder().
		WithType(NotificationTypeRefundApproved).
		WithRecipient(uuid.New(), "rohan@hotelio.test", "", "Rohan Mehta").
		WithSubject("Your refund has been approved").
		Build()

	payload, err := original.ToJSON()
	require.NoError(t, err)

	var decoded BookingNotification
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, original.RecipientEmail, decoded.RecipientEmail)
	assert.Equal(t, original.Subject, decoded.Subject)
}
