package payments

import (
	"context"
	"fmt"
	"math"

	"hotelio/internal/bookings"
	"hotelio/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateOrder(ctx context.Context, requesterID uuid.UUID, isAdmin bool, req CreateOrderRequest) (*OrderResponse, error)
	VerifyAndCapture(ctx context.Context, requesterID uuid.UUID, isAdmin bool, bookingID uuid.UUID, req VerifyPaymentRequest) (*bookings.BookingResponse, error)
}

type service struct {
	provider Provider
	verifier *Verifier
	bookings bookings.Service
	log      *logger.Logger

	keyID    string
	currency string
}

func NewService(provider Provider, verifier *Verifier, bookingService bookings.Service, keyID, currency string) Service {
	return &service{
		provider: provider,
		verifier: verifier,
		bookings: bookingService,
		log:      logger.GetDefault(),
		keyID:    keyID,
		currency: currency,
	}
}

// toPaise converts a major-unit amount to integer minor units
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (s *service) CreateOrder(ctx context.Context, requesterID uuid.UUID, isAdmin bool, req CreateOrderRequest) (*OrderResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", bookings.ErrInvalidRequest)
	}

	booking, err := s.bookings.GetBookingByID(ctx, bookingID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	if booking.Status == bookings.StatusCancelled {
		return nil, fmt.Errorf("%w: booking is cancelled", bookings.ErrInvalidRequest)
	}

	if booking.AmountDueNow <= 0 {
		return nil, fmt.Errorf("%w: nothing due on this booking", bookings.ErrInvalidRequest)
	}

	amountPaise := toPaise(booking.AmountDueNow)

	orderID, err := s.provider.CreateOrder(ctx, amountPaise, s.currency, booking.BookingNumber)
	if err != nil {
		// Provider failure changes nothing on the booking
		return nil, err
	}

	if err := s.bookings.AttachPaymentOrder(ctx, bookingID, orderID); err != nil {
		return nil, fmt.Errorf("failed to attach payment order: %w", err)
	}

	s.log.InfoWithContext(ctx, "payment order created", map[string]interface{}{
		"booking_id": bookingID.String(),
		"order_id":   orderID,
		"amount":     booking.AmountDueNow,
	})

	return &OrderResponse{
		OrderID:     orderID,
		BookingID:   bookingID.String(),
		Amount:      booking.AmountDueNow,
		AmountPaise: amountPaise,
		Currency:    s.currency,
		KeyID:       s.keyID,
	}, nil
}

func (s *service) VerifyAndCapture(ctx context.Context, requesterID uuid.UUID, isAdmin bool, bookingID uuid.UUID, req VerifyPaymentRequest) (*bookings.BookingResponse, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	if booking.PaymentOrderID == "" || booking.PaymentOrderID != req.OrderID {
		return nil, fmt.Errorf("%w: order does not belong to this booking", bookings.ErrInvalidRequest)
	}

	if !s.verifier.Verify(req.OrderID, req.PaymentID, req.Signature) {
		// The booking stays pending; the guest can retry checkout
		s.log.WarnContext(ctx, "payment signature rejected",
			"booking_id", bookingID.String(),
			"order_id", req.OrderID,
		)
		return nil, ErrVerificationFailed
	}

	return s.bookings.MarkPaid(ctx, bookingID, req.OrderID, req.PaymentID, req.Signature, booking.AmountDueNow)
}
