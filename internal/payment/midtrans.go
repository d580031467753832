package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

// Midtrans implements Gateway over the official SDK. Snap transactions go
// through the Snap API; QRIS charges and status/notification lookups go
// through the Core API.
type Midtrans struct {
	snap snap.Client
	core coreapi.Client
}

func NewMidtrans(serverKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	m := &Midtrans{}
	m.snap.New(serverKey, env)
	m.core.New(serverKey, env)
	return m
}

func (m *Midtrans) CreateSnapTransaction(ctx context.Context, req *CheckoutRequest) (*SnapResult, error) {
	items := itemDetails(req.Items)
	sreq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		Items: &items,
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.FirstName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
			BillAddr: &midtrans.CustomerAddress{
				FName: req.Customer.FirstName,
				Phone: req.Customer.Phone,
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Callbacks:  &snap.Callbacks{Finish: req.FinishURL},
	}
	resp, err := m.snap.CreateTransaction(sreq)
	if err != nil {
		return nil, providerErr("Midtrans API error", err)
	}
	return &SnapResult{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (m *Midtrans) ChargeQRIS(ctx context.Context, req *CheckoutRequest) (*QRISResult, error) {
	items := itemDetails(req.Items)
	creq := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		Items: &items,
		CustomerDetails: &midtrans.CustomerDetails{
			FName: req.Customer.FirstName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
	}
	resp, err := m.core.ChargeTransaction(creq)
	if err != nil {
		return nil, providerErr("Midtrans API error", err)
	}

	res := &QRISResult{ExpiryTime: resp.ExpiryTime}
	for _, a := range resp.Actions {
		if a.Name == "generate-qr-code" {
			res.QRCodeURL = a.URL
			break
		}
	}
	return res, nil
}

func (m *Midtrans) TransactionStatus(ctx context.Context, orderID string) (json.RawMessage, error) {
	resp, err := m.core.CheckTransaction(orderID)
	if err != nil {
		return nil, providerErr("Midtrans API error", err)
	}
	raw, merr := json.Marshal(resp)
	if merr != nil {
		return nil, merr
	}
	return raw, nil
}

// VerifyNotification re-queries the transaction by the order id carried in
// the webhook body, so the statuses acted upon come from the provider, not
// from the unauthenticated payload.
func (m *Midtrans) VerifyNotification(ctx context.Context, payload map[string]any) (*Notification, error) {
	orderID, _ := payload["order_id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("notification payload has no order_id")
	}
	resp, err := m.core.CheckTransaction(orderID)
	if err != nil {
		return nil, providerErr("Midtrans API error", err)
	}
	return &Notification{
		OrderID:           resp.OrderID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
	}, nil
}

func itemDetails(items []Item) []midtrans.ItemDetails {
	out := make([]midtrans.ItemDetails, 0, len(items))
	for _, it := range items {
		out = append(out, midtrans.ItemDetails{
			ID:           it.ID,
			Price:        it.Price,
			Qty:          it.Quantity,
			Name:         it.Name,
			Category:     it.Category,
			MerchantName: it.MerchantName,
		})
	}
	return out
}

func providerErr(msg string, err *midtrans.Error) error {
	status := 0
	if err != nil {
		status = err.StatusCode
		if err.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, err.Message)
		}
	}
	return apperr.FromProvider(status, msg, err)
}
