package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One capture per provider payment id, so replayed callbacks are no-ops
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_payment_capture
		ON payment_captures (payment_id);
	`).Error
	if err != nil {
		return err
	}

	// Exactly one active booking per resource and event date. Stay ranges
	// cannot be covered by a plain unique index; those rely on the
	// FOR UPDATE re-check inside the booking transaction.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_active_slot_booking
		ON bookings (resource_id, event_date, time_slot)
		WHERE status IN ('PENDING', 'CONFIRMED', 'CHECKED_IN')
		AND event_date IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Index for availability queries scanning active bookings per resource
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_resource_status
		ON bookings (resource_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for stay-range overlap scans
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_resource_dates
		ON bookings (resource_id, check_in_date, check_out_date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
