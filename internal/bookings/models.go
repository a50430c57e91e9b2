package bookings

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Booking is one ledger entry claiming a resource for a temporal extent
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingNumber string    `gorm:"unique;not null;size:20" json:"booking_number"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ResourceID    uuid.UUID `gorm:"type:uuid;index;not null" json:"resource_id"`

	// Denormalized from the resource so the state machine and overlap
	// predicate never need a join
	ResourceCategory string `gorm:"type:varchar(20);not null" json:"resource_category"`

	// Temporal extent, flattened. STAY fills check_in/check_out,
	// EVENT fills event_date, SLOT fills event_date + time_slot.
	ExtentKind   ExtentKind `gorm:"type:varchar(10);not null" json:"extent_kind"`
	CheckInDate  *time.Time `gorm:"type:date" json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `gorm:"type:date" json:"check_out_date,omitempty"`
	EventDate    *time.Time `gorm:"type:date" json:"event_date,omitempty"`
	TimeSlot     string     `gorm:"size:50;default:''" json:"time_slot,omitempty"`

	GuestCount     int    `gorm:"not null;check:guest_count > 0" json:"guest_count"`
	SpecialRequest string `gorm:"type:text" json:"special_request,omitempty"`

	BookingType string  `gorm:"type:varchar(10);check:booking_type IN ('FULL', 'PARTIAL');default:'FULL'" json:"booking_type"`
	TotalPrice  float64 `gorm:"not null;check:total_price >= 0" json:"total_price"`
	PaidAmount  float64 `gorm:"not null;default:0;check:paid_amount >= 0" json:"paid_amount"`

	Status        Status        `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"payment_status"`

	// External payment references
	PaymentOrderID   string `gorm:"size:64;index" json:"payment_order_id,omitempty"`
	PaymentID        string `gorm:"size:64" json:"payment_id,omitempty"`
	PaymentSignature string `gorm:"size:128" json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// PaymentCapture is one successful capture reported by the provider.
// The unique payment id makes replayed callbacks no-ops.
type PaymentCapture struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	PaymentID string    `gorm:"uniqueIndex;not null;size:64" json:"payment_id"`
	OrderID   string    `gorm:"not null;size:64" json:"order_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Currency  string    `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Signature string    `gorm:"size:128" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for PaymentCapture
func (PaymentCapture) TableName() string {
	return "payment_captures"
}

// Extent reconstructs the sum type from the flattened columns
func (b *Booking) Extent() *TemporalExtent {
	extent := &TemporalExtent{Kind: b.ExtentKind, TimeSlot: b.TimeSlot}
	if b.CheckInDate != nil {
		extent.CheckIn = *b.CheckInDate
	}
	if b.CheckOutDate != nil {
		extent.CheckOut = *b.CheckOutDate
	}
	if b.EventDate != nil {
		extent.Date = *b.EventDate
	}
	return extent
}

// AmountDueNow is what must be captured to confirm the booking:
// the full price, or the deposit fraction for partial bookings.
func (b *Booking) AmountDueNow(depositPercent float64) float64 {
	if b.BookingType == "PARTIAL" {
		return roundMoney(b.TotalPrice * depositPercent / 100)
	}
	return b.TotalPrice
}

// RemainingBalance is what is still unpaid on the total
func (b *Booking) RemainingBalance() float64 {
	return roundMoney(b.TotalPrice - b.PaidAmount)
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// roundMoney rounds to 2 decimal places
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
