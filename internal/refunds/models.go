package refunds

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotEligible means the booking cannot carry a refund request right now
var ErrNotEligible = errors.New("booking is not eligible for a refund")

// ErrRequestNotFound is returned when no open refund request exists
var ErrRequestNotFound = errors.New("refund request not found")

// RefundStatus is the lifecycle of a refund request
type RefundStatus string

const (
	RefundRequested RefundStatus = "REQUESTED"
	RefundApproved  RefundStatus = "APPROVED"
	RefundDenied    RefundStatus = "DENIED"
)

// RefundRequest is a guest's request to get a completed payment back
type RefundRequest struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID   uuid.UUID    `gorm:"type:uuid;index;not null" json:"booking_id"`
	RequesterID uuid.UUID    `gorm:"type:uuid;not null" json:"requester_id"`
	Reason      string       `gorm:"type:text" json:"reason"`
	Amount      float64      `gorm:"not null" json:"amount"`
	Status      RefundStatus `gorm:"type:varchar(20);default:'REQUESTED'" json:"status"`

	// Provider refund reference, set on approval
	ProviderRefundID string `gorm:"size:64" json:"provider_refund_id,omitempty"`

	DecidedBy *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for RefundRequest
func (RefundRequest) TableName() string {
	return "refund_requests"
}

// RequestRefundRequest is the wire shape for opening a refund request
type RequestRefundRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=2000"`
}

// DecideRefundRequest is the admin decision payload
type DecideRefundRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE DENY"`
}

// RefundResponse is the wire shape of a refund request
type RefundResponse struct {
	ID               string       `json:"id"`
	BookingID        string       `json:"booking_id"`
	RequesterID      string       `json:"requester_id"`
	Reason           string       `json:"reason"`
	Amount           float64      `json:"amount"`
	Status           RefundStatus `json:"status"`
	ProviderRefundID string       `json:"provider_refund_id,omitempty"`
	DecidedBy        *uuid.UUID   `json:"decided_by,omitempty"`
	DecidedAt        *time.Time   `json:"decided_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

func (r *RefundRequest) ToResponse() RefundResponse {
	return RefundResponse{
		ID:               r.ID.String(),
		BookingID:        r.BookingID.String(),
		RequesterID:      r.RequesterID.String(),
		Reason:           r.Reason,
		Amount:           r.Amount,
		Status:           r.Status,
		ProviderRefundID: r.ProviderRefundID,
		DecidedBy:        r.DecidedBy,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
	}
}
