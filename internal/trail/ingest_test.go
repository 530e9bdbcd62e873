package trail

import (
	"math"
	"testing"
	"time"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/mesh"
)

func TestIngestFirstSampleAlwaysRecords(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	node := mesh.Node{NodeID: "n1", Position: &mesh.Position{Lat: 40.0, Lng: -74.0}}

	sample, ok := Ingest(node, nil, now)
	if !ok {
		t.Fatalf("expected first sample to record")
	}
	if sample.Lat != 40.0 || sample.Lng != -74.0 {
		t.Fatalf("unexpected sample: %+v", sample)
	}
	if !sample.Timestamp.Equal(now) {
		t.Fatalf("expected ingestion timestamp, got %v", sample.Timestamp)
	}
}

func TestIngestSkipsMissingPosition(t *testing.T) {
	now := time.Now()
	if _, ok := Ingest(mesh.Node{NodeID: "n1"}, nil, now); ok {
		t.Fatalf("expected no sample for missing position")
	}
}

func TestIngestSkipsNonFiniteCoordinates(t *testing.T) {
	now := time.Now()
	cases := []mesh.Position{
		{Lat: math.NaN(), Lng: -74.0},
		{Lat: 40.0, Lng: math.Inf(1)},
		{Lat: math.Inf(-1), Lng: math.NaN()},
	}
	for _, pos := range cases {
		p := pos
		if _, ok := Ingest(mesh.Node{NodeID: "n1", Position: &p}, nil, now); ok {
			t.Fatalf("expected non-finite position %+v to be skipped", pos)
		}
	}
}

func TestIngestJitterSuppression(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	trail := []Sample{{Lat: 40.0000, Lng: -74.0000, Timestamp: start}}

	// Within epsilon on both axes: GPS jitter, no new sample.
	jitter := mesh.Node{NodeID: "n1", Position: &mesh.Position{Lat: 40.00005, Lng: -74.00005}}
	if _, ok := Ingest(jitter, trail, start.Add(30*time.Second)); ok {
		t.Fatalf("expected jitter to be suppressed")
	}

	// Genuine movement beyond epsilon records.
	moved := mesh.Node{NodeID: "n1", Position: &mesh.Position{Lat: 40.0010, Lng: -74.0010}}
	sample, ok := Ingest(moved, trail, start.Add(60*time.Second))
	if !ok {
		t.Fatalf("expected movement to record")
	}
	if sample.Lat != 40.0010 {
		t.Fatalf("unexpected sample: %+v", sample)
	}
}

func TestIngestSingleAxisMovement(t *testing.T) {
	now := time.Now()
	trail := []Sample{{Lat: 40.0, Lng: -74.0, Timestamp: now.Add(-time.Minute)}}

	// Latitude alone exceeding epsilon is enough.
	node := mesh.Node{NodeID: "n1", Position: &mesh.Position{Lat: 40.0002, Lng: -74.0}}
	if _, ok := Ingest(node, trail, now); !ok {
		t.Fatalf("expected latitude-only movement to record")
	}

}

func TestIngestExactEpsilonSuppressed(t *testing.T) {
	now := time.Now()
	trail := []Sample{{Lat: 0, Lng: 0, Timestamp: now.Add(-time.Minute)}}

	// Displacement of exactly epsilon does not record; the threshold is strict.
	node := mesh.Node{NodeID: "n1", Position: &mesh.Position{Lat: Epsilon, Lng: Epsilon}}
	if _, ok := Ingest(node, trail, now); ok {
		t.Fatalf("expected displacement of exactly epsilon to be suppressed")
	}
}
