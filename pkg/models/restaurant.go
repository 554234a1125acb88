package models

// Restaurant is the directory record stored as one redis hash per
// restaurant. TotalStars keeps the full-precision running sum; AvgStars
// carries the presentation value rounded to one decimal so repeated
// rounding never compounds into the stored total.
type Restaurant struct {
	ID         string   `json:"id" redis:"id"`
	Name       string   `json:"name" redis:"name"`
	Location   string   `json:"location" redis:"location"`
	TotalStars float64  `json:"total_stars" redis:"total_stars"`
	AvgStars   float64  `json:"avg_stars" redis:"avg_stars"`
	ViewCount  int64    `json:"view_count" redis:"view_count"`
	Cuisines   []string `json:"cuisines,omitempty" redis:"-"`
}
