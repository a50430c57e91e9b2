package bookings

// CreateBookingRequest is the wire shape for creating a booking. The
// extent fields follow the resource category: rooms take check_in/
// check_out, banquet halls take date, tables take date + time_slot.
type CreateBookingRequest struct {
	ResourceID     string `json:"resource_id" binding:"required,uuid"`
	CheckIn        string `json:"check_in" binding:"omitempty,datetime=2006-01-02"`
	CheckOut       string `json:"check_out" binding:"omitempty,datetime=2006-01-02"`
	Date           string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TimeSlot       string `json:"time_slot" binding:"omitempty,max=50"`
	GuestCount     int    `json:"guest_count" binding:"required,min=1"`
	SpecialRequest string `json:"special_request" binding:"omitempty,max=2000"`
	BookingType    string `json:"booking_type" binding:"omitempty,oneof=FULL PARTIAL"`
}

// AvailabilityQuery drives the free-resource search
type AvailabilityQuery struct {
	Category   string `form:"category" binding:"required,oneof=ROOM BANQUET TABLE"`
	CheckIn    string `form:"check_in" binding:"omitempty,datetime=2006-01-02"`
	CheckOut   string `form:"check_out" binding:"omitempty,datetime=2006-01-02"`
	Date       string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	TimeSlot   string `form:"time_slot" binding:"omitempty,max=50"`
	GuestCount int    `form:"guest_count" binding:"omitempty,min=1"`
}

// UpdateStatusRequest is the admin operational transition payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED CHECKED_IN CHECKED_OUT COMPLETED CANCELLED"`
}

// BookingListQuery filters admin and user booking listings
type BookingListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CHECKED_IN CHECKED_OUT COMPLETED CANCELLED"`
	Category string `form:"category" binding:"omitempty,oneof=ROOM BANQUET TABLE"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}
