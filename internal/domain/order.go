package domain

// Order selects which ranking index a listing is paginated over.
type Order string

const (
	// OrderScore ranks articles by their vote-weighted score.
	OrderScore Order = "score"
	// OrderTime ranks articles by creation time.
	OrderTime Order = "time"
)

// ParseOrder parses an order name. An empty string defaults to OrderScore.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", string(OrderScore):
		return OrderScore, nil
	case string(OrderTime):
		return OrderTime, nil
	default:
		return "", ErrUnknownOrder
	}
}
