package refunds

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, request *RefundRequest) error
	GetOpenByBookingID(ctx context.Context, bookingID uuid.UUID) (*RefundRequest, error)
	GetLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*RefundRequest, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *RefundRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetOpenByBookingID(ctx context.Context, bookingID uuid.UUID) (*RefundRequest, error) {
	var request RefundRequest
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, RefundRequested).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) GetLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*RefundRequest, error) {
	var request RefundRequest
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&RefundRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}
