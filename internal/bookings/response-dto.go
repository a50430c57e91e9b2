package bookings

import (
	"time"
)

// BookingResponse is the wire shape of a booking
type BookingResponse struct {
	ID               string        `json:"id"`
	BookingNumber    string        `json:"booking_number"`
	UserID           string        `json:"user_id"`
	ResourceID       string        `json:"resource_id"`
	ResourceCategory string        `json:"resource_category"`
	ExtentKind       ExtentKind    `json:"extent_kind"`
	CheckInDate      *time.Time    `json:"check_in_date,omitempty"`
	CheckOutDate     *time.Time    `json:"check_out_date,omitempty"`
	EventDate        *time.Time    `json:"event_date,omitempty"`
	TimeSlot         string        `json:"time_slot,omitempty"`
	GuestCount       int           `json:"guest_count"`
	SpecialRequest   string        `json:"special_request,omitempty"`
	BookingType      string        `json:"booking_type"`
	TotalPrice       float64       `json:"total_price"`
	PaidAmount       float64       `json:"paid_amount"`
	AmountDueNow     float64       `json:"amount_due_now"`
	Status           Status        `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentOrderID   string        `json:"payment_order_id,omitempty"`
	PaymentID        string        `json:"payment_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty"`
}

// PaginatedBookings wraps a booking listing page
type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ToResponse converts a Booking to its wire shape
func (b *Booking) ToResponse(depositPercent float64) BookingResponse {
	due := b.AmountDueNow(depositPercent) - b.PaidAmount
	if due < 0 {
		due = 0
	}

	return BookingResponse{
		ID:               b.ID.String(),
		BookingNumber:    b.BookingNumber,
		UserID:           b.UserID.String(),
		ResourceID:       b.ResourceID.String(),
		ResourceCategory: b.ResourceCategory,
		ExtentKind:       b.ExtentKind,
		CheckInDate:      b.CheckInDate,
		CheckOutDate:     b.CheckOutDate,
		EventDate:        b.EventDate,
		TimeSlot:         b.TimeSlot,
		GuestCount:       b.GuestCount,
		SpecialRequest:   b.SpecialRequest,
		BookingType:      b.BookingType,
		TotalPrice:       b.TotalPrice,
		PaidAmount:       b.PaidAmount,
		AmountDueNow:     roundMoney(due),
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		PaymentOrderID:   b.PaymentOrderID,
		PaymentID:        b.PaymentID,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		CancelledAt:      b.CancelledAt,
	}
}
