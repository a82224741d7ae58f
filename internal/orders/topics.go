package orders

const (
	TopicOrderPlaced = "order.placed"
)

// Partition key = order id so every event of one order keeps its ordering.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
