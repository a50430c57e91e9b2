package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelio/internal/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Booking CRUD
	CreateBookingWithAvailabilityCheck(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByNumber(ctx context.Context, bookingNumber string) (*Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// Availability
	FindFree(ctx context.Context, category catalog.ResourceCategory, extent *TemporalExtent, guestCount int) ([]catalog.Resource, error)

	// Payment captures
	ApplyCapture(ctx context.Context, capture *PaymentCapture, apply func(current *Booking) map[string]interface{}) (bool, *Booking, error)
	GetCaptureByPaymentID(ctx context.Context, paymentID string) (*PaymentCapture, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// activeStatuses are booking states that block overlapping bookings
var activeStatuses = []Status{StatusPending, StatusConfirmed, StatusCheckedIn}

// overlapConditions returns the SQL predicate and args matching bookings
// whose extent overlaps the given one
func overlapConditions(extent *TemporalExtent) (string, []interface{}) {
	switch extent.Kind {
	case ExtentStay:
		// Half-open [check_in, check_out) ranges overlap when each
		// starts before the other ends
		return "extent_kind = ? AND check_in_date < ? AND check_out_date > ?",
			[]interface{}{ExtentStay, extent.CheckOut, extent.CheckIn}
	case ExtentEvent:
		return "extent_kind = ? AND event_date = ?",
			[]interface{}{ExtentEvent, extent.Date}
	default:
		return "extent_kind = ? AND event_date = ? AND time_slot = ?",
			[]interface{}{ExtentSlot, extent.Date, extent.TimeSlot}
	}
}

func (r *repository) FindFree(ctx context.Context, category catalog.ResourceCategory, extent *TemporalExtent, guestCount int) ([]catalog.Resource, error) {
	overlapSQL, overlapArgs := overlapConditions(extent)

	busy := r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("resource_id").
		Where("status IN ?", activeStatuses).
		Where(overlapSQL, overlapArgs...)

	var resources []catalog.Resource
	err := r.db.WithContext(ctx).
		Model(&catalog.Resource{}).
		Where("category = ?", category).
		Where("status = ?", catalog.StatusAvailable).
		Where("capacity >= ?", guestCount).
		Where("id NOT IN (?)", busy).
		Order("base_price ASC, id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, fmt.Errorf("availability query failed: %w", err)
	}

	return resources, nil
}

// CreateBookingWithAvailabilityCheck creates a booking atomically. The
// resource row is locked FOR UPDATE and the overlap predicate re-checked
// inside the transaction, so two concurrent requests cannot both take
// the last free extent.
func (r *repository) CreateBookingWithAvailabilityCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the resource row to serialize competing bookings
		var resource struct {
			ID       uuid.UUID `gorm:"column:id"`
			Capacity int       `gorm:"column:capacity"`
			Status   string    `gorm:"column:status"`
		}

		err := tx.Table("resources").
			Select("id, capacity, status").
			Where("id = ?", booking.ResourceID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&resource).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: resource not found", ErrInvalidRequest)
			}
			return fmt.Errorf("failed to lock resource: %w", err)
		}

		// 2. Check the unit is operationally bookable
		if !catalog.ResourceStatus(resource.Status).IsBookable() {
			return ErrResourceUnavailable
		}

		if resource.Capacity < booking.GuestCount {
			return fmt.Errorf("%w: guest count exceeds capacity", ErrInvalidRequest)
		}

		// 3. Re-check for overlapping active bookings under the lock
		overlapSQL, overlapArgs := overlapConditions(booking.Extent())

		var conflicts int64
		err = tx.Model(&Booking{}).
			Where("resource_id = ?", booking.ResourceID).
			Where("status IN ?", activeStatuses).
			Where(overlapSQL, overlapArgs...).
			Count(&conflicts).Error
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}

		if conflicts > 0 {
			return ErrResourceUnavailable
		}

		// 4. Insert the booking
		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrResourceUnavailable
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByNumber(ctx context.Context, bookingNumber string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("booking_number = ?", bookingNumber).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBooking(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) applyFilters(db *gorm.DB, query BookingListQuery) *gorm.DB {
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.Category != "" {
		db = db.Where("resource_category = ?", query.Category)
	}

	if query.DateFrom != "" {
		if dateFrom, err := time.ParseInLocation(dateLayout, query.DateFrom, time.UTC); err == nil {
			db = db.Where("created_at >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.ParseInLocation(dateLayout, query.DateTo, time.UTC); err == nil {
			// Include the entire end day
			db = db.Where("created_at < ?", dateTo.Add(24*time.Hour))
		}
	}

	return db
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	return r.paginate(baseQuery, query)
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).Model(&Booking{})

	return r.paginate(baseQuery, query)
}

func (r *repository) paginate(baseQuery *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

var errDuplicateCapture = errors.New("capture already recorded")

// ApplyCapture inserts a capture row and applies the resulting booking
// updates in one transaction. The booking row is locked first so two
// concurrent captures cannot interleave their read-modify-write on
// paid_amount. Returns created=false with the current booking when the
// payment id was already recorded, which makes duplicate callbacks
// harmless.
func (r *repository) ApplyCapture(ctx context.Context, capture *PaymentCapture, apply func(current *Booking) map[string]interface{}) (bool, *Booking, error) {
	var booking Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", capture.BookingID).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if err := tx.Create(capture).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// The failed insert poisons the transaction, so bail
				// out and let the caller handle the duplicate
				return errDuplicateCapture
			}
			return fmt.Errorf("failed to record capture: %w", err)
		}

		updates := apply(&booking)
		updates["updated_at"] = time.Now()

		if err := tx.Model(&Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to apply capture: %w", err)
		}

		return nil
	})

	if errors.Is(err, errDuplicateCapture) {
		return false, &booking, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, &booking, nil
}

func (r *repository) GetCaptureByPaymentID(ctx context.Context, paymentID string) (*PaymentCapture, error) {
	var capture PaymentCapture
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&capture).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &capture, nil
}
