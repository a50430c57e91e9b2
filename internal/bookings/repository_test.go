package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB opens a gorm session over sqlmock with the same error
// translation the production connection uses.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func stayBooking() *Booking {
	checkIn := time.Date(2030, 10, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2030, 10, 4, 0, 0, 0, 0, time.UTC)
	return &Booking{
		BookingNumber:    "HTL-20300901-ABCDEF",
		UserID:           uuid.New(),
		ResourceID:       uuid.New(),
		ResourceCategory: "ROOM",
		ExtentKind:       ExtentStay,
		CheckInDate:      &checkIn,
		CheckOutDate:     &checkOut,
		GuestCount:       2,
		BookingType:      "FULL",
		TotalPrice:       13500,
		Status:           StatusPending,
		PaymentStatus:    PaymentPending,
	}
}

func TestCreateBookingWithAvailabilityCheck(t *testing.T) {
	ctx := context.Background()

	lockQuery := `SELECT id, capacity, status FROM "resources" WHERE id = \$1 ORDER BY "resources"\."id" LIMIT \$2 FOR UPDATE`

	t.Run("locks the resource row and inserts when free", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)
		booking := stayBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "status"}).
				AddRow(booking.ResourceID.String(), 2, "AVAILABLE"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectCommit()

		err := repo.CreateBookingWithAvailabilityCheck(ctx, booking)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlap found under the lock rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)
		booking := stayBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "status"}).
				AddRow(booking.ResourceID.String(), 2, "AVAILABLE"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.CreateBookingWithAvailabilityCheck(ctx, booking)

		assert.ErrorIs(t, err, ErrResourceUnavailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-bookable resource rolls back before the overlap check", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)
		booking := stayBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "status"}).
				AddRow(booking.ResourceID.String(), 2, "MAINTENANCE"))
		mock.ExpectRollback()

		err := repo.CreateBookingWithAvailabilityCheck(ctx, booking)

		assert.ErrorIs(t, err, ErrResourceUnavailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplyCapture(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	lockQuery := `SELECT \* FROM "bookings" WHERE id = \$1 ORDER BY "bookings"\."id" LIMIT \$2 FOR UPDATE`

	bookingRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "booking_number", "user_id", "resource_id", "resource_category",
			"extent_kind", "guest_count", "booking_type", "total_price", "paid_amount",
			"status", "payment_status",
		}).AddRow(
			bookingID.String(), "HTL-20300901-ABCDEF", uuid.New().String(), uuid.New().String(), "ROOM",
			"STAY", 2, "FULL", 13500.0, 0.0,
			"PENDING", "PENDING",
		)
	}

	capture := func() *PaymentCapture {
		return &PaymentCapture{
			BookingID: bookingID,
			PaymentID: "pay_1",
			OrderID:   "order_1",
			Amount:    13500,
			Signature: "sig",
		}
	}

	applyPaid := func(current *Booking) map[string]interface{} {
		return map[string]interface{}{
			"paid_amount":    current.PaidAmount + 13500,
			"payment_status": PaymentCompleted,
			"status":         StatusConfirmed,
		}
	}

	t.Run("capture and booking update commit together", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WillReturnRows(bookingRows())
		mock.ExpectQuery(`INSERT INTO "payment_captures"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		created, booking, err := repo.ApplyCapture(ctx, capture(), applyPaid)

		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, booking)
		assert.Equal(t, bookingID, booking.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate payment id rolls back and reports current state", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WillReturnRows(bookingRows())
		mock.ExpectQuery(`INSERT INTO "payment_captures"`).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		created, booking, err := repo.ApplyCapture(ctx, capture(), applyPaid)

		require.NoError(t, err)
		assert.False(t, created)
		require.NotNil(t, booking)
		assert.Equal(t, StatusPending, booking.Status)
		assert.Equal(t, 0.0, booking.PaidAmount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing booking reports not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		_, _, err := repo.ApplyCapture(ctx, capture(), applyPaid)

		assert.ErrorIs(t, err, ErrBookingNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOverlapConditions(t *testing.T) {
	date := time.Date(2030, 11, 20, 0, 0, 0, 0, time.UTC)

	t.Run("stay uses half-open range predicates", func(t *testing.T) {
		extent := &TemporalExtent{
			Kind:     ExtentStay,
			CheckIn:  time.Date(2030, 10, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2030, 10, 4, 0, 0, 0, 0, time.UTC),
		}

		sql, args := overlapConditions(extent)

		assert.Equal(t, "extent_kind = ? AND check_in_date < ? AND check_out_date > ?", sql)
		assert.Equal(t, []interface{}{ExtentStay, extent.CheckOut, extent.CheckIn}, args)
	})

	t.Run("event matches on the date alone", func(t *testing.T) {
		sql, args := overlapConditions(&TemporalExtent{Kind: ExtentEvent, Date: date})

		assert.Equal(t, "extent_kind = ? AND event_date = ?", sql)
		assert.Equal(t, []interface{}{ExtentEvent, date}, args)
	})

	t.Run("slot matches on date and slot", func(t *testing.T) {
		sql, args := overlapConditions(&TemporalExtent{Kind: ExtentSlot, Date: date, TimeSlot: "DINNER"})

		assert.Equal(t, "extent_kind = ? AND event_date = ? AND time_slot = ?", sql)
		assert.Equal(t, []interface{}{ExtentSlot, date, "DINNER"}, args)
	})
}
