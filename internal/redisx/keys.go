package redisx

import "time"

const (
	// Session hash: session:{jti} -> {token, role, email}
	KeySession = "session:%s"

	// Cached catalog listing: catalog:products -> JSON product array
	KeyCatalog = "catalog:products"

	// Cached order status: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCatalogCache = 5 * time.Minute
	TTLOrderStatus  = 24 * time.Hour
	TTLDedup        = 48 * time.Hour
)
