package checkout

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	FlowSnap = "SNAP"
	FlowQRIS = "QRIS"
)

// Order ids are provider-facing and load-bearing: SNAP-<userId>-<epochMillis>
// or QRIS-<userId>-<epochMillis>. The embedded user id is the fallback for
// notifications about orders that predate the orders table.
func NewOrderID(flow string, userID int64, at time.Time) string {
	return fmt.Sprintf("%s-%d-%d", flow, userID, at.UnixMilli())
}

var orderIDRe = regexp.MustCompile(`^(SNAP|QRIS)-(\d+)-`)

func ParseOrderUser(orderID string) (int64, error) {
	m := orderIDRe.FindStringSubmatch(orderID)
	if m == nil {
		return 0, fmt.Errorf("cannot extract user id from order id %q", orderID)
	}
	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot extract user id from order id %q: %w", orderID, err)
	}
	return id, nil
}
