package mesh

import "time"

type Position struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	AltitudeM *float64 `json:"altitude_m,omitempty"`
}

// Node is one mesh participant as reported by the radio bridge. The engine
// treats it as immutable input for the duration of a tick.
type Node struct {
	NodeID       string    `json:"node_id"`
	Position     *Position `json:"position,omitempty"`
	LastHeard    time.Time `json:"last_heard"`
	ShortName    string    `json:"short_name"`
	LongName     string    `json:"long_name"`
	HwModel      string    `json:"hw_model"`
	BatteryLevel *float64  `json:"battery_level,omitempty"`
	SNR          *float64  `json:"snr,omitempty"`
	TemperatureC *float64  `json:"temperature_c,omitempty"`
}
