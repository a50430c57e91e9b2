package payments

import (
	"context"
	"testing"

	"hotelio/internal/bookings"
	"hotelio/internal/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	args := m.Called(ctx, amountPaise, currency, receipt)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Refund(ctx context.Context, paymentID string, amountPaise int64) (string, error) {
	args := m.Called(ctx, paymentID, amountPaise)
	return args.String(0), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req bookings.CreateBookingRequest) (*bookings.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*bookings.BookingResponse, error) {
	args := m.Called(ctx, id, requesterID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).(*bookings.PaginatedBookings), args.Error(1)
}

func (m *MockBookingService) GetAllBookings(ctx context.Context, query bookings.BookingListQuery) (*bookings.PaginatedBookings, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(*bookings.PaginatedBookings), args.Error(1)
}

func (m *MockBookingService) FindAvailable(ctx context.Context, query bookings.AvailabilityQuery) ([]catalog.ResourceResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]catalog.ResourceResponse), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, isAdmin bool) (*bookings.BookingResponse, error) {
	args := m.Called(ctx, id, requesterID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.BookingResponse), args.Error(1)
}

func (m *MockBookingService) TransitionStatus(ctx context.Context, id uuid.UUID, target bookings.Status) (*bookings.BookingResponse, error) {
	args := m.Called(ctx, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.BookingResponse), args.Error(1)
}

func (m *MockBookingService) AttachPaymentOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	args := m.Called(ctx, id, orderID)
	return args.Error(0)
}

func (m *MockBookingService) MarkPaid(ctx context.Context, id uuid.UUID, orderID, paymentID, signature string, amount float64) (*bookings.BookingResponse, error) {
	args := m.Called(ctx, id, orderID, paymentID, signature, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.BookingResponse), args.Error(1)
}

func (m *MockBookingService) MarkPaymentFailed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingService) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingService) DepositPercent() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func bookingResponse(id, userID uuid.UUID, due float64) *bookings.BookingResponse {
	return &bookings.BookingResponse{
		ID:            id.String(),
		BookingNumber: "HTL-20301001-ABCDEF",
		UserID:        userID.String(),
		Status:        bookings.StatusPending,
		PaymentStatus: bookings.PaymentPending,
		TotalPrice:    due,
		AmountDueNow:  due,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bookingID := uuid.New()

	t.Run("mints order for the amount due in paise", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier("secret"), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500.50)
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)
		provider.On("CreateOrder", ctx, int64(1350050), "INR", booking.BookingNumber).Return("order_123", nil)
		bookingSvc.On("AttachPaymentOrder", ctx, bookingID, "order_123").Return(nil)

		order, err := svc.CreateOrder(ctx, userID, false, CreateOrderRequest{BookingID: bookingID.String()})

		require.NoError(t, err)
		assert.Equal(t, "order_123", order.OrderID)
		assert.Equal(t, int64(1350050), order.AmountPaise)
		assert.Equal(t, 13500.50, order.Amount)
		assert.Equal(t, "INR", order.Currency)
		assert.Equal(t, "rzp_test_key", order.KeyID)
	})

	t.Run("cancelled booking is rejected", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier("secret"), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500)
		booking.Status = bookings.StatusCancelled
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)

		_, err := svc.CreateOrder(ctx, userID, false, CreateOrderRequest{BookingID: bookingID.String()})

		assert.ErrorIs(t, err, bookings.ErrInvalidRequest)
		provider.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("nothing due is rejected", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier("secret"), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 0)
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)

		_, err := svc.CreateOrder(ctx, userID, false, CreateOrderRequest{BookingID: bookingID.String()})

		assert.ErrorIs(t, err, bookings.ErrInvalidRequest)
	})

	t.Run("provider failure leaves booking untouched", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier("secret"), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500)
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)
		provider.On("CreateOrder", ctx, int64(1350000), "INR", booking.BookingNumber).
			Return("", ErrPaymentProvider)

		_, err := svc.CreateOrder(ctx, userID, false, CreateOrderRequest{BookingID: bookingID.String()})

		assert.ErrorIs(t, err, ErrPaymentProvider)
		bookingSvc.AssertNotCalled(t, "AttachPaymentOrder")
	})
}

func TestVerifyAndCapture(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bookingID := uuid.New()
	const secret = "test_key_secret"

	t.Run("valid signature captures the payment", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier(secret), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500)
		booking.PaymentOrderID = "order_123"

		sig := signPayload(secret, "order_123", "pay_456")

		paid := bookingResponse(bookingID, userID, 13500)
		paid.Status = bookings.StatusConfirmed
		paid.PaymentStatus = bookings.PaymentCompleted

		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)
		bookingSvc.On("MarkPaid", ctx, bookingID, "order_123", "pay_456", sig, 13500.0).Return(paid, nil)

		result, err := svc.VerifyAndCapture(ctx, userID, false, bookingID, VerifyPaymentRequest{
			OrderID:   "order_123",
			PaymentID: "pay_456",
			Signature: sig,
		})

		require.NoError(t, err)
		assert.Equal(t, bookings.StatusConfirmed, result.Status)
		assert.Equal(t, bookings.PaymentCompleted, result.PaymentStatus)
	})

	t.Run("bad signature leaves booking pending", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier(secret), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500)
		booking.PaymentOrderID = "order_123"
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)

		_, err := svc.VerifyAndCapture(ctx, userID, false, bookingID, VerifyPaymentRequest{
			OrderID:   "order_123",
			PaymentID: "pay_456",
			Signature: "deadbeef",
		})

		assert.ErrorIs(t, err, ErrVerificationFailed)
		bookingSvc.AssertNotCalled(t, "MarkPaid")
	})

	t.Run("order from another booking is rejected", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier(secret), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500)
		booking.PaymentOrderID = "order_123"
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)

		sig := signPayload(secret, "order_999", "pay_456")
		_, err := svc.VerifyAndCapture(ctx, userID, false, bookingID, VerifyPaymentRequest{
			OrderID:   "order_999",
			PaymentID: "pay_456",
			Signature: sig,
		})

		assert.ErrorIs(t, err, bookings.ErrInvalidRequest)
		bookingSvc.AssertNotCalled(t, "MarkPaid")
	})

	t.Run("booking without an order is rejected", func(t *testing.T) {
		provider := new(MockProvider)
		bookingSvc := new(MockBookingService)
		svc := NewService(provider, NewVerifier(secret), bookingSvc, "rzp_test_key", "INR")

		booking := bookingResponse(bookingID, userID, 13500)
		bookingSvc.On("GetBookingByID", ctx, bookingID, userID, false).Return(booking, nil)

		sig := signPayload(secret, "order_123", "pay_456")
		_, err := svc.VerifyAndCapture(ctx, userID, false, bookingID, VerifyPaymentRequest{
			OrderID:   "order_123",
			PaymentID: "pay_456",
			Signature: sig,
		})

		assert.ErrorIs(t, err, bookings.ErrInvalidRequest)
	})
}
