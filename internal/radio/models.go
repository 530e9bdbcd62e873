package radio

import "time"

// Radio kinds decide base-station vs handheld presentation on the map.
const (
	KindBase     = "base"
	KindHandheld = "handheld"
)

type Radio struct {
	ID        string    `json:"id"`
	NodeID    string    `json:"node_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
