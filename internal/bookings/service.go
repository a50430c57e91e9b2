package bookings

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"time"

	"hotelio/internal/catalog"
	"hotelio/internal/notifications"
	"hotelio/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBookingByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	FindAvailable(ctx context.Context, query AvailabilityQuery) ([]catalog.ResourceResponse, error)

	CancelBooking(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target Status) (*BookingResponse, error)

	// Payment hooks, called by the payments and refunds services
	AttachPaymentOrder(ctx context.Context, id uuid.UUID, orderID string) error
	MarkPaid(ctx context.Context, id uuid.UUID, orderID, paymentID, signature string, amount float64) (*BookingResponse, error)
	MarkPaymentFailed(ctx context.Context, id uuid.UUID) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error

	DepositPercent() float64
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	notifier    notifications.Service
	log         *logger.Logger

	depositPercent float64
}

func NewService(repo Repository, catalogRepo catalog.Repository, notifier notifications.Service, depositPercent float64) Service {
	return &service{
		repo:           repo,
		catalogRepo:    catalogRepo,
		notifier:       notifier,
		log:            logger.GetDefault(),
		depositPercent: depositPercent,
	}
}

func (s *service) DepositPercent() float64 {
	return s.depositPercent
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid resource id", ErrInvalidRequest)
	}

	resource, err := s.catalogRepo.GetByID(resourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: resource not found", ErrInvalidRequest)
	}

	kind := ExpectedKind(string(resource.Category))
	extent, err := ParseExtent(string(kind), req.CheckIn, req.CheckOut, req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if err := extent.Validate(time.Now()); err != nil {
		return nil, err
	}

	if req.GuestCount > resource.Capacity {
		return nil, fmt.Errorf("%w: guest count %d exceeds capacity %d", ErrInvalidRequest, req.GuestCount, resource.Capacity)
	}

	bookingType := req.BookingType
	if bookingType == "" {
		bookingType = "FULL"
	}

	totalPrice := calculateTotalPrice(resource, extent)

	bookingNumber, err := s.generateBookingNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	booking := &Booking{
		BookingNumber:    bookingNumber,
		UserID:           userID,
		ResourceID:       resourceID,
		ResourceCategory: string(resource.Category),
		ExtentKind:       extent.Kind,
		GuestCount:       req.GuestCount,
		SpecialRequest:   req.SpecialRequest,
		BookingType:      bookingType,
		TotalPrice:       totalPrice,
		Status:           StatusPending,
		PaymentStatus:    PaymentPending,
	}

	switch extent.Kind {
	case ExtentStay:
		booking.CheckInDate = &extent.CheckIn
		booking.CheckOutDate = &extent.CheckOut
	case ExtentEvent:
		booking.EventDate = &extent.Date
	case ExtentSlot:
		booking.EventDate = &extent.Date
		booking.TimeSlot = extent.TimeSlot
	}

	if err := s.repo.CreateBookingWithAvailabilityCheck(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), resourceID.String(), userID.String())

	response := booking.ToResponse(s.depositPercent)
	return &response, nil
}

// calculateTotalPrice is nights times the nightly rate for stays, the
// base price for single-date bookings
func calculateTotalPrice(resource *catalog.Resource, extent *TemporalExtent) float64 {
	if extent.Kind == ExtentStay {
		return roundMoney(float64(extent.Nights()) * resource.BasePrice)
	}
	return roundMoney(resource.BasePrice)
}

func (s *service) GetBookingByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID != requesterID {
		return nil, ErrForbidden
	}

	response := booking.ToResponse(s.depositPercent)
	return &response, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.paginatedResponse(bookings, totalCount, query), nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.paginatedResponse(bookings, totalCount, query), nil
}

func (s *service) paginatedResponse(bookings []Booking, totalCount int64, query BookingListQuery) *PaginatedBookings {
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse(s.depositPercent)
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}
}

func (s *service) FindAvailable(ctx context.Context, query AvailabilityQuery) ([]catalog.ResourceResponse, error) {
	kind := ExpectedKind(query.Category)
	extent, err := ParseExtent(string(kind), query.CheckIn, query.CheckOut, query.Date, query.TimeSlot)
	if err != nil {
		return nil, err
	}
	if err := extent.Validate(time.Now()); err != nil {
		return nil, err
	}

	guestCount := query.GuestCount
	if guestCount <= 0 {
		guestCount = 1
	}

	resources, err := s.repo.FindFree(ctx, catalog.ResourceCategory(query.Category), extent, guestCount)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.ResourceResponse, len(resources))
	for i := range resources {
		responses[i] = resources[i].ToResponse()
	}
	return responses, nil
}

func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID != requesterID {
		return nil, ErrForbidden
	}

	if !booking.Status.CanBeCancelled() {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, booking.Status)
	}

	if booking.Extent().HasBegun(time.Now()) {
		return nil, fmt.Errorf("%w: booking period has already begun", ErrInvalidTransition)
	}

	now := time.Now()
	err = s.repo.UpdateBooking(ctx, id, map[string]interface{}{
		"status":       StatusCancelled,
		"cancelled_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = StatusCancelled
	booking.CancelledAt = &now

	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.ResourceID.String(), requesterID.String())
	s.notify(ctx, booking, notifications.NotificationTypeBookingCancelled)

	response := booking.ToResponse(s.depositPercent)
	return &response, nil
}

func (s *service) TransitionStatus(ctx context.Context, id uuid.UUID, target Status) (*BookingResponse, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, target)
	}

	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(booking.ResourceCategory, booking.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s for %s", ErrInvalidTransition, booking.Status, target, booking.ResourceCategory)
	}

	updates := map[string]interface{}{"status": target}
	if target == StatusCancelled {
		now := time.Now()
		updates["cancelled_at"] = now
		booking.CancelledAt = &now
	}

	if err := s.repo.UpdateBooking(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = target

	response := booking.ToResponse(s.depositPercent)
	return &response, nil
}

func (s *service) AttachPaymentOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	return s.repo.UpdateBooking(ctx, id, map[string]interface{}{
		"payment_order_id": orderID,
	})
}

// MarkPaid records a verified capture. It is idempotent by provider
// payment id: a replayed callback changes nothing. The capture row and
// the booking update commit in a single transaction. The paid amount is
// clamped so it never exceeds the total price, and the booking confirms
// on the first capture covering the amount due now.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID, orderID, paymentID, signature string, amount float64) (*BookingResponse, error) {
	capture := &PaymentCapture{
		BookingID: id,
		PaymentID: paymentID,
		OrderID:   orderID,
		Amount:    amount,
		Signature: signature,
	}

	confirmed := false
	created, booking, err := s.repo.ApplyCapture(ctx, capture, func(current *Booking) map[string]interface{} {
		newPaid := roundMoney(current.PaidAmount + amount)
		if newPaid > current.TotalPrice {
			newPaid = current.TotalPrice
		}

		updates := map[string]interface{}{
			"paid_amount":       newPaid,
			"payment_id":        paymentID,
			"payment_signature": signature,
		}

		if newPaid >= current.AmountDueNow(s.depositPercent) {
			if CanTransitionPayment(current.PaymentStatus, PaymentCompleted) {
				updates["payment_status"] = PaymentCompleted
				current.PaymentStatus = PaymentCompleted
			}
			if current.Status == StatusPending {
				updates["status"] = StatusConfirmed
				current.Status = StatusConfirmed
				confirmed = true
			}
		}

		current.PaidAmount = newPaid
		current.PaymentID = paymentID
		return updates
	})
	if err != nil {
		return nil, err
	}

	if !created {
		// Duplicate delivery reports current state and changes nothing.
		// The same payment id replayed against a different booking is
		// not a benign duplicate and gets rejected.
		prior, err := s.repo.GetCaptureByPaymentID(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		if prior != nil && prior.BookingID != id {
			return nil, fmt.Errorf("%w: payment %s was captured for another booking", ErrInvalidRequest, paymentID)
		}

		response := booking.ToResponse(s.depositPercent)
		return &response, nil
	}

	s.log.LogPaymentCaptured(ctx, booking.ID.String(), paymentID, amount)

	s.notify(ctx, booking, notifications.NotificationTypePaymentReceived)
	if confirmed {
		s.notify(ctx, booking, notifications.NotificationTypeBookingConfirmed)
	}

	response := booking.ToResponse(s.depositPercent)
	return &response, nil
}

func (s *service) MarkPaymentFailed(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanTransitionPayment(booking.PaymentStatus, PaymentFailed) {
		return fmt.Errorf("%w: payment %s -> FAILED", ErrInvalidTransition, booking.PaymentStatus)
	}

	return s.repo.UpdateBooking(ctx, id, map[string]interface{}{
		"payment_status": PaymentFailed,
	})
}

func (s *service) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanTransitionPayment(booking.PaymentStatus, PaymentRefunded) {
		return fmt.Errorf("%w: payment %s -> REFUNDED", ErrInvalidTransition, booking.PaymentStatus)
	}

	return s.repo.UpdateBooking(ctx, id, map[string]interface{}{
		"payment_status": PaymentRefunded,
	})
}

// notify publishes fire-and-forget; a dead broker never fails a booking
func (s *service) notify(ctx context.Context, booking *Booking, notType notifications.NotificationType) {
	if s.notifier == nil {
		return
	}

	data := map[string]interface{}{
		"booking_number": booking.BookingNumber,
		"total_price":    booking.TotalPrice,
		"paid_amount":    booking.PaidAmount,
		"status":         string(booking.Status),
	}

	if err := s.notifier.NotifyBooking(ctx, booking.UserID, booking.ID, notType, data); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking notification", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
			"type":       string(notType),
		})
	}
}

// generateBookingNumber generates a unique booking number
func (s *service) generateBookingNumber() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	if _, err := rand.Read(randomPart); err != nil {
		return "", err
	}
	for i := range randomPart {
		randomPart[i] = letters[int(randomPart[i])%len(letters)]
	}

	return fmt.Sprintf("HTL-%s-%s", timestamp, randomPart), nil
}
