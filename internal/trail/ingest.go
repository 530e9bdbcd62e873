package trail

import (
	"math"
	"time"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/mesh"
)

// Ingest decides whether a node update yields a new trail sample. Nodes with
// no position or with non-finite coordinates are skipped. The first sample
// for a node always records; after that a sample records only when the
// position moved more than Epsilon on at least one axis, which keeps GPS
// jitter out of the trail.
func Ingest(node mesh.Node, existing []Sample, now time.Time) (Sample, bool) {
	if node.Position == nil {
		return Sample{}, false
	}
	lat, lng := node.Position.Lat, node.Position.Lng
	if !finite(lat) || !finite(lng) {
		return Sample{}, false
	}

	if len(existing) > 0 {
		last := existing[len(existing)-1]
		if math.Abs(lat-last.Lat) <= Epsilon && math.Abs(lng-last.Lng) <= Epsilon {
			return Sample{}, false
		}
	}
	return Sample{Lat: lat, Lng: lng, Timestamp: now}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
