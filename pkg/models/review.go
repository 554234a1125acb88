package models

// Review is stored as a redis hash keyed by its own id; the owning
// restaurant's ledger list holds only the id. Timestamp is unix
// milliseconds at submission time.
type Review struct {
	ID           string `json:"id" redis:"id"`
	RestaurantID string `json:"restaurant_id" redis:"restaurant_id"`
	Rating       int    `json:"rating" redis:"rating"`
	Comment      string `json:"comment,omitempty" redis:"comment"`
	Timestamp    int64  `json:"timestamp" redis:"timestamp"`
}
