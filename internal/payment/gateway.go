// Package payment keeps the payment provider behind a narrow interface:
// create transaction (Snap), charge (QRIS), status lookup, and notification
// verification. Checkout and the notification reconciler never see the SDK.
package payment

import (
	"context"
	"encoding/json"
)

type Item struct {
	ID           string
	Price        int64
	Quantity     int32
	Name         string
	Category     string
	MerchantName string
}

type Customer struct {
	FirstName string
	Email     string
	Phone     string
}

type CheckoutRequest struct {
	OrderID     string
	GrossAmount int64
	Items       []Item
	Customer    Customer
	FinishURL   string
}

type SnapResult struct {
	Token       string
	RedirectURL string
}

type QRISResult struct {
	QRCodeURL  string
	ExpiryTime string
}

// Notification is the normalized webhook payload after provider-side
// verification.
type Notification struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
}

type Gateway interface {
	CreateSnapTransaction(ctx context.Context, req *CheckoutRequest) (*SnapResult, error)
	ChargeQRIS(ctx context.Context, req *CheckoutRequest) (*QRISResult, error)
	// TransactionStatus returns the provider's status payload verbatim.
	TransactionStatus(ctx context.Context, orderID string) (json.RawMessage, error)
	VerifyNotification(ctx context.Context, payload map[string]any) (*Notification, error)
}
