package redisx

import "time"

const (
	// Dedup payment notifications: dedup:notify:{order_id}:{transaction_status}
	KeyNotifDedup = "dedup:notify:%s:%s"

	// Dedup consumed events: dedup:{service}:{event_id}
	KeyEventDedup = "dedup:%s:%s"
)

var (
	TTLNotifDedup = 48 * time.Hour
	TTLEventDedup = 48 * time.Hour
)
