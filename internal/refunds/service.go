package refunds

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotelio/internal/bookings"
	"hotelio/internal/notifications"
	"hotelio/internal/payments"
	"hotelio/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	RequestRefund(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID, req RequestRefundRequest) (*RefundResponse, error)
	DecideRefund(ctx context.Context, adminID uuid.UUID, bookingID uuid.UUID, req DecideRefundRequest) (*RefundResponse, error)
	GetRefundStatus(ctx context.Context, requesterID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*RefundResponse, error)
}

type service struct {
	repo     Repository
	bookings bookings.Service
	provider payments.Provider
	notifier notifications.Service
	log      *logger.Logger
}

func NewService(repo Repository, bookingService bookings.Service, provider payments.Provider, notifier notifications.Service) Service {
	return &service{
		repo:     repo,
		bookings: bookingService,
		provider: provider,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RequestRefund opens a refund request for the full paid amount. A
// booking qualifies once its payment is completed and no other request
// is still open.
func (s *service) RequestRefund(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID, req RequestRefundRequest) (*RefundResponse, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID, requesterID, false)
	if err != nil {
		return nil, err
	}

	if booking.PaymentStatus != bookings.PaymentCompleted {
		return nil, fmt.Errorf("%w: payment status is %s", ErrNotEligible, booking.PaymentStatus)
	}

	if booking.PaidAmount <= 0 {
		return nil, fmt.Errorf("%w: nothing has been paid", ErrNotEligible)
	}

	open, err := s.repo.GetOpenByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open refund requests: %w", err)
	}
	if open != nil {
		return nil, fmt.Errorf("%w: a refund request is already pending", ErrNotEligible)
	}

	request := &RefundRequest{
		BookingID:   bookingID,
		RequesterID: requesterID,
		Reason:      req.Reason,
		Amount:      booking.PaidAmount,
		Status:      RefundRequested,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create refund request: %w", err)
	}

	s.log.InfoWithContext(ctx, "refund requested", map[string]interface{}{
		"booking_id": bookingID.String(),
		"request_id": request.ID.String(),
		"amount":     request.Amount,
	})

	response := request.ToResponse()
	return &response, nil
}

// DecideRefund settles the open request on a booking. Approval pays the
// provider first and only records the decision once the provider refund
// succeeds, so a provider failure leaves the request open for a retry.
func (s *service) DecideRefund(ctx context.Context, adminID uuid.UUID, bookingID uuid.UUID, req DecideRefundRequest) (*RefundResponse, error) {
	request, err := s.repo.GetOpenByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refund request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	booking, err := s.bookings.GetBookingByID(ctx, bookingID, adminID, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"decided_by": adminID,
		"decided_at": now,
	}

	switch req.Decision {
	case "APPROVE":
		if booking.PaymentID == "" {
			return nil, fmt.Errorf("%w: booking has no captured payment", ErrNotEligible)
		}

		refundID, err := s.provider.Refund(ctx, booking.PaymentID, toPaise(request.Amount))
		if err != nil {
			// Request stays REQUESTED so the admin can retry
			return nil, err
		}

		updates["status"] = RefundApproved
		updates["provider_refund_id"] = refundID
		request.Status = RefundApproved
		request.ProviderRefundID = refundID

		if err := s.repo.Update(ctx, request.ID, updates); err != nil {
			return nil, fmt.Errorf("failed to record refund approval: %w", err)
		}

		if err := s.bookings.MarkRefunded(ctx, bookingID); err != nil {
			s.log.ErrorWithContext(ctx, "refund paid but booking not marked refunded", err, map[string]interface{}{
				"booking_id": bookingID.String(),
				"refund_id":  refundID,
			})
		}

		s.notify(ctx, request, booking, notifications.NotificationTypeRefundApproved)

	case "DENY":
		updates["status"] = RefundDenied
		request.Status = RefundDenied

		if err := s.repo.Update(ctx, request.ID, updates); err != nil {
			return nil, fmt.Errorf("failed to record refund denial: %w", err)
		}

		s.notify(ctx, request, booking, notifications.NotificationTypeRefundDenied)

	default:
		return nil, fmt.Errorf("%w: unknown decision %q", bookings.ErrInvalidRequest, req.Decision)
	}

	request.DecidedBy = &adminID
	request.DecidedAt = &now

	s.log.LogRefundDecided(ctx, bookingID.String(), adminID.String(), string(request.Status))

	response := request.ToResponse()
	return &response, nil
}

func (s *service) GetRefundStatus(ctx context.Context, requesterID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*RefundResponse, error) {
	// Ownership check rides on the booking lookup
	if _, err := s.bookings.GetBookingByID(ctx, bookingID, requesterID, isAdmin); err != nil {
		return nil, err
	}

	request, err := s.repo.GetLatestByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	response := request.ToResponse()
	return &response, nil
}

func (s *service) notify(ctx context.Context, request *RefundRequest, booking *bookings.BookingResponse, notType notifications.NotificationType) {
	if s.notifier == nil {
		return
	}

	data := map[string]interface{}{
		"booking_number": booking.BookingNumber,
		"refund_amount":  request.Amount,
		"status":         string(request.Status),
	}

	if err := s.notifier.NotifyBooking(ctx, request.RequesterID, request.BookingID, notType, data); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish refund notification", err, map[string]interface{}{
			"booking_id": request.BookingID.String(),
			"type":       string(notType),
		})
	}
}
