package checkout

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Order is persisted at checkout time keyed by the provider-facing order id,
// so notifications resolve the owner by lookup instead of parsing the id.
type Order struct {
	OrderID     string     `json:"orderId"`
	UserID      int64      `json:"userId"`
	Flow        string     `json:"flow"`
	GrossAmount int64      `json:"grossAmount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

type OrderItem struct {
	ProductID int64
	Quantity  int
	Price     int64
}
