package trail

import "time"

// Sample is one retained trail position. Timestamp is the time the engine
// ingested the sample, not the node's self-reported time, so the trail
// reflects observed cadence regardless of device clock skew.
type Sample struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Rendered is the read-only view of one node's trail handed to the map
// renderer. Valid only until the next tick.
type Rendered struct {
	NodeID    string   `json:"node_id"`
	Positions []Sample `json:"positions"`
	DistanceM float64  `json:"distance_m"`
}

// Epsilon is the minimum angular displacement, in degrees, required on at
// least one axis before a new sample is recorded (~11 m at the equator).
const Epsilon = 0.0001

// DefaultRetentionMinutes is the retention window applied when the operator
// has not picked one.
const DefaultRetentionMinutes = 60

// RetentionPresets lists the operator-selectable retention windows in minutes.
var RetentionPresets = []int{15, 30, 60, 120, 360, 720, 1440}

func validRetention(minutes int) bool {
	for _, p := range RetentionPresets {
		if p == minutes {
			return true
		}
	}
	return false
}
