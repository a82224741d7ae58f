package orders

type Status string

const (
	// StatusPlaced is set at submission; the notifier confirms it async.
	StatusPlaced    Status = "PLACED"
	StatusConfirmed Status = "CONFIRMED"
)

// CachedStatus is the value stored under the order-status redis key. The
// owner email travels with the status so the read path can reject sessions
// that do not own the order without touching the store.
type CachedStatus struct {
	UserEmail string `json:"user_email"`
	Status    Status `json:"status"`
}

var validNext = map[Status]map[Status]bool{
	StatusPlaced:    {StatusConfirmed: true},
	StatusConfirmed: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
