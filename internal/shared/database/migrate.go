package database

import (
	"hotelio/internal/bookings"
	"hotelio/internal/catalog"
	"hotelio/internal/refunds"
	"hotelio/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&catalog.Resource{},
		&bookings.Booking{},
		&bookings.PaymentCapture{},
		&refunds.RefundRequest{},
	)
}
