package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/cart"
	kafkax "github.com/FahriNazarudin/E-commerce/internal/kafka"
	"github.com/FahriNazarudin/E-commerce/internal/payment"
	"github.com/FahriNazarudin/E-commerce/internal/redisx"
	"github.com/FahriNazarudin/E-commerce/internal/users"
)

const (
	itemCategory = "E-commerce"
	merchantName = "IKEA Store"
	maxItemName  = 50
)

type CartSource interface {
	ItemsForCheckout(ctx context.Context, userID int64) ([]cart.CheckoutItem, error)
	Clear(ctx context.Context, userID int64) error
}

type UserSource interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *Order, items []OrderItem) error
	Owner(ctx context.Context, orderID string) (int64, error)
	MarkPaid(ctx context.Context, orderID string) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Deduper interface {
	SeenOrMark(ctx context.Context, key string) (bool, error)
	Unmark(ctx context.Context, key string) error
}

// Service converts carts into provider payment requests and reconciles the
// provider's asynchronous notifications back into local state.
type Service struct {
	Carts       CartSource
	Users       UserSource
	Orders      OrderStore
	Gateway     payment.Gateway
	Producer    Publisher
	Dedup       Deduper
	FrontendURL string
	ServiceName string
	Now         func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type SnapCheckout struct {
	Token       string `json:"token"`
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirect_url"`
	TotalAmount int64  `json:"totalAmount"`
}

type QRISCheckout struct {
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	QRCode      string `json:"qrCode"`
	ExpiryTime  string `json:"expiry_time"`
}

func (s *Service) CreateSnap(ctx context.Context, userID int64) (*SnapCheckout, error) {
	req, total, err := s.buildRequest(ctx, userID, FlowSnap)
	if err != nil {
		return nil, err
	}
	req.FinishURL = fmt.Sprintf("%s/payment-status?order_id=%s", s.FrontendURL, req.OrderID)

	res, err := s.Gateway.CreateSnapTransaction(ctx, req)
	if err != nil {
		return nil, err
	}
	return &SnapCheckout{
		Token:       res.Token,
		OrderID:     req.OrderID,
		RedirectURL: res.RedirectURL,
		TotalAmount: total,
	}, nil
}

func (s *Service) CreateQRIS(ctx context.Context, userID int64) (*QRISCheckout, error) {
	req, total, err := s.buildRequest(ctx, userID, FlowQRIS)
	if err != nil {
		return nil, err
	}

	res, err := s.Gateway.ChargeQRIS(ctx, req)
	if err != nil {
		return nil, err
	}
	expiry := res.ExpiryTime
	if expiry == "" {
		expiry = s.now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	}
	return &QRISCheckout{
		OrderID:     req.OrderID,
		TotalAmount: total,
		QRCode:      res.QRCodeURL,
		ExpiryTime:  expiry,
	}, nil
}

// buildRequest snapshots the cart, computes the total, synthesizes the order
// id and persists the order before the provider is called.
func (s *Service) buildRequest(ctx context.Context, userID int64, flow string) (*payment.CheckoutRequest, int64, error) {
	items, err := s.Carts.ItemsForCheckout(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return nil, 0, apperr.New(apperr.Validation, "Cart is empty")
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	details := make([]payment.Item, 0, len(items))
	orderItems := make([]OrderItem, 0, len(items))
	for _, it := range items {
		total += int64(it.Quantity) * it.Price
		details = append(details, payment.Item{
			ID:           fmt.Sprintf("%d", it.ProductID),
			Price:        it.Price,
			Quantity:     int32(it.Quantity),
			Name:         truncate(it.Name, maxItemName),
			Category:     itemCategory,
			MerchantName: merchantName,
		})
		orderItems = append(orderItems, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	orderID := NewOrderID(flow, userID, s.now())
	order := &Order{
		OrderID:     orderID,
		UserID:      userID,
		Flow:        flow,
		GrossAmount: total,
		Status:      StatusPending,
	}
	if err := s.Orders.Create(ctx, order, orderItems); err != nil {
		return nil, 0, err
	}

	customer := payment.Customer{FirstName: "Customer"}
	if u != nil {
		if u.Username != "" {
			customer.FirstName = u.Username
		}
		customer.Email = u.Email
		customer.Phone = u.PhoneNumber
	}

	return &payment.CheckoutRequest{
		OrderID:     orderID,
		GrossAmount: total,
		Items:       details,
		Customer:    customer,
	}, total, nil
}

// Status proxies the provider's transaction status verbatim.
func (s *Service) Status(ctx context.Context, orderID string) (json.RawMessage, error) {
	return s.Gateway.TransactionStatus(ctx, orderID)
}

// HandleNotification verifies the webhook with the provider and dispatches on
// transaction status. Paid notifications clear the owner's cart, mark the
// order paid and publish order.paid; everything else only logs. A duplicate
// delivery of the same (order, status) is acknowledged without side effects.
func (s *Service) HandleNotification(ctx context.Context, payload map[string]any) error {
	n, err := s.Gateway.VerifyNotification(ctx, payload)
	if err != nil {
		return err
	}

	log.Printf("transaction notification: order_id=%s transaction_status=%s fraud_status=%s",
		n.OrderID, n.TransactionStatus, n.FraudStatus)

	key := fmt.Sprintf(redisx.KeyNotifDedup, n.OrderID, n.TransactionStatus)
	if seen, err := s.Dedup.SeenOrMark(ctx, key); err != nil {
		return err
	} else if seen {
		return nil
	}

	switch n.TransactionStatus {
	case "capture":
		switch n.FraudStatus {
		case "accept":
			return s.settleOnce(ctx, n.OrderID, key)
		case "challenge":
			log.Printf("transaction %s is challenged, waiting for manual review", n.OrderID)
		}
	case "settlement":
		return s.settleOnce(ctx, n.OrderID, key)
	case "cancel", "deny", "expire":
		// cart stays intact so the user can retry
		log.Printf("transaction %s failed with status %s", n.OrderID, n.TransactionStatus)
	case "pending":
		log.Printf("transaction %s is pending", n.OrderID)
	default:
		log.Printf("transaction %s has unhandled status %s", n.OrderID, n.TransactionStatus)
	}
	return nil
}

// settleOnce releases the dedup mark when settling fails, so the provider's
// retry of the same notification is not acknowledged without the side effects
// having run.
func (s *Service) settleOnce(ctx context.Context, orderID, key string) error {
	if err := s.settle(ctx, orderID); err != nil {
		if uerr := s.Dedup.Unmark(ctx, key); uerr != nil {
			log.Printf("unmark dedup %s: %v", key, uerr)
		}
		return err
	}
	return nil
}

func (s *Service) settle(ctx context.Context, orderID string) error {
	userID, err := s.Orders.Owner(ctx, orderID)
	if err != nil {
		if apperr.KindOf(err) != apperr.NotFound {
			return err
		}
		// order predates the orders table; fall back to the embedded user id
		userID, err = ParseOrderUser(orderID)
		if err != nil {
			return err
		}
	}

	if err := s.Carts.Clear(ctx, userID); err != nil {
		return err
	}
	if err := s.Orders.MarkPaid(ctx, orderID); err != nil {
		return err
	}
	s.publishPaid(orderID, userID)
	log.Printf("cart cleared for user %d after successful payment of %s", userID, orderID)
	return nil
}

func (s *Service) publishPaid(orderID string, userID int64) {
	if s.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPaid,
		EventVersion:  1,
		OccurredAt:    s.now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(OrderPaidPayload{OrderID: orderID, UserID: userID}),
	}
	s.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderPaid)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
