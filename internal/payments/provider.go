package payments

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	// ErrPaymentProvider wraps transport or provider-side failures.
	// Nothing about the booking changed when this is returned.
	ErrPaymentProvider = errors.New("payment provider error")

	// ErrVerificationFailed means the callback signature did not match
	ErrVerificationFailed = errors.New("payment signature verification failed")
)

// Provider is the external payment collaborator. Amounts are in minor
// units (paise).
type Provider interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (orderID string, err error)

	// Refund refunds amountPaise of a captured payment
	Refund(ctx context.Context, paymentID string, amountPaise int64) (refundID string, err error)
}

type razorpayProvider struct {
	client *razorpay.Client
}

// NewRazorpayProvider builds the production provider from API credentials
func NewRazorpayProvider(keyID, keySecret string) Provider {
	return &razorpayProvider{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (p *razorpayProvider) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("%w: order create failed: %v", ErrPaymentProvider, err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("%w: order response missing id", ErrPaymentProvider)
	}

	return orderID, nil
}

func (p *razorpayProvider) Refund(ctx context.Context, paymentID string, amountPaise int64) (string, error) {
	if amountPaise <= 0 {
		return "", fmt.Errorf("%w: refund amount must be positive", ErrPaymentProvider)
	}

	body, err := p.client.Payment.Refund(paymentID, int(amountPaise), map[string]interface{}{}, nil)
	if err != nil {
		return "", fmt.Errorf("%w: refund failed: %v", ErrPaymentProvider, err)
	}

	refundID, ok := body["id"].(string)
	if !ok || refundID == "" {
		return "", fmt.Errorf("%w: refund response missing id", ErrPaymentProvider)
	}

	return refundID, nil
}
