package payments

// CreateOrderRequest mints a provider order for a booking's amount due
type CreateOrderRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// OrderResponse is handed to the client to drive provider checkout
type OrderResponse struct {
	OrderID     string  `json:"order_id"`
	BookingID   string  `json:"booking_id"`
	Amount      float64 `json:"amount"`
	AmountPaise int64   `json:"amount_paise"`
	Currency    string  `json:"currency"`
	KeyID       string  `json:"key_id"`
}

// VerifyPaymentRequest is the provider callback payload relayed by the client
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}
