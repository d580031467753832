// Package cart is the per-user ledger of (product, quantity) lines. One line
// exists per (user, product) pair; repeat adds merge into it.
package cart

type LineProduct struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	ImgURL string `json:"imgUrl"`
	Stock  int    `json:"stock"`
}

type Line struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	ProductID int64       `json:"productId"`
	Quantity  int         `json:"quantity"`
	Product   LineProduct `json:"Product"`
}

// CheckoutItem is the slice of a line checkout needs: quantity plus the
// product's identity and unit price, read in one snapshot.
type CheckoutItem struct {
	ProductID int64
	Quantity  int
	Name      string
	Price     int64
}
