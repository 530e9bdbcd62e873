package trail

import (
	"errors"
	"sort"
	"time"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/shared/geo"
)

var ErrRetentionPreset = errors.New("retention minutes must be one of the presets")

// Store owns the per-node trail map. It is not safe for concurrent use; the
// tracker serializes ticks around it.
type Store struct {
	trails           map[string][]Sample
	retentionMinutes int
}

// NewStore creates an empty store. A retention value outside the preset set
// (including zero) falls back to the default.
func NewStore(retentionMinutes int) *Store {
	if !validRetention(retentionMinutes) {
		retentionMinutes = DefaultRetentionMinutes
	}
	return &Store{
		trails:           map[string][]Sample{},
		retentionMinutes: retentionMinutes,
	}
}

// Upsert appends a sample to the node's trail, creating the trail when
// absent, then prunes that trail to the retention window. The sample's own
// ingestion timestamp serves as "now" for the prune.
func (s *Store) Upsert(nodeID string, sample Sample) {
	s.trails[nodeID] = pruneSamples(append(s.trails[nodeID], sample), s.retentionMinutes, sample.Timestamp)
}

// Prune drops every sample older than the retention window from every trail.
// Idempotent: pruning twice with the same now is a no-op the second time.
func (s *Store) Prune(retentionMinutes int, now time.Time) {
	for nodeID, samples := range s.trails {
		s.trails[nodeID] = pruneSamples(samples, retentionMinutes, now)
	}
}

func pruneSamples(samples []Sample, retentionMinutes int, now time.Time) []Sample {
	window := time.Duration(retentionMinutes) * time.Minute
	kept := samples[:0]
	for _, sm := range samples {
		if now.Sub(sm.Timestamp) <= window {
			kept = append(kept, sm)
		}
	}
	return kept
}

func (s *Store) Retention() int {
	return s.retentionMinutes
}

// SetRetention switches the retention window to one of the presets and
// immediately re-prunes all trails against it.
func (s *Store) SetRetention(minutes int, now time.Time) error {
	if !validRetention(minutes) {
		return ErrRetentionPreset
	}
	s.retentionMinutes = minutes
	s.Prune(minutes, now)
	return nil
}

// Trail returns the node's retained samples in ingestion order.
func (s *Store) Trail(nodeID string) []Sample {
	return s.trails[nodeID]
}

// Rendering returns the trails eligible for path rendering, ordered by node
// id. Trails with fewer than two samples are excluded: a single point has no
// direction to draw.
func (s *Store) Rendering() []Rendered {
	var out []Rendered
	for nodeID, samples := range s.trails {
		if len(samples) < 2 {
			continue
		}
		out = append(out, Rendered{
			NodeID:    nodeID,
			Positions: samples,
			DistanceM: pathDistanceM(samples),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

func pathDistanceM(samples []Sample) float64 {
	var total float64
	for i := 1; i < len(samples); i++ {
		total += geo.HaversineKm(samples[i-1].Lat, samples[i-1].Lng, samples[i].Lat, samples[i].Lng) * 1000
	}
	return total
}
