package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/db"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/mesh"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/stream"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/trail"

	"github.com/google/uuid"
)

// Service runs the per-tick presence update: ingest positions into trails,
// prune, reclassify, persist appended samples and fan the result out. The
// mutex serializes ticks so a slow push cannot overlap the next one.
type Service struct {
	db    db.Querier
	hub   *stream.Hub
	store *trail.Store

	mu    sync.Mutex
	nodes []mesh.Node

	now func() time.Time
}

func NewService(db db.Querier, hub *stream.Hub, store *trail.Store) *Service {
	return &Service{
		db:    db,
		hub:   hub,
		store: store,
		now:   time.Now,
	}
}

// ApplySnapshot ingests one node snapshot set pushed by the radio bridge.
// It runs to completion synchronously; the returned result is what the
// bridge sees and what subscribers receive over the hub.
func (s *Service) ApplySnapshot(ctx context.Context, nodes []mesh.Node) (TickResult, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	appended := 0
	for _, node := range nodes {
		sample, ok := trail.Ingest(node, s.store.Trail(node.NodeID), now)
		if !ok {
			continue
		}
		s.store.Upsert(node.NodeID, sample)
		appended++

		if s.db != nil {
			_, err := s.db.Exec(ctx, `
				INSERT INTO node_positions (node_id, location, recorded_at)
				VALUES ($1, ST_SetSRID(ST_MakePoint($2,$3), 4326)::geography, $4)
			`, node.NodeID, sample.Lng, sample.Lat, sample.Timestamp)
			if err != nil {
				log.Printf("persist position for %s: %v", node.NodeID, err)
			}
		}
	}

	// Trails that saw no append still age out with the clock.
	s.store.Prune(s.store.Retention(), now)
	s.nodes = nodes

	result := TickResult{
		TickID:   uuid.NewString(),
		At:       now,
		Nodes:    len(nodes),
		Appended: appended,
		Counts:   mesh.CountNodes(nodes, now),
	}

	if s.hub != nil {
		payload, _ := json.Marshal(result)
		s.hub.Broadcast(stream.TopicMesh, payload)
	}
	return result, nil
}

// NodeViews classifies the last snapshot for marker rendering.
func (s *Service) NodeViews() []NodeView {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]NodeView, 0, len(s.nodes))
	for _, node := range s.nodes {
		views = append(views, NodeView{Node: node, Tier: mesh.Classify(node.LastHeard, now)})
	}
	return views
}

func (s *Service) Counts() mesh.Counts {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	return mesh.CountNodes(s.nodes, now)
}

// TrailPaths returns the renderable trails. The slices are a snapshot valid
// only until the next tick.
func (s *Service) TrailPaths() []trail.Rendered {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Rendering()
}

func (s *Service) Retention() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Retention()
}

func (s *Service) SetRetention(minutes int) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SetRetention(minutes, now)
}

// History returns the node's persisted samples, oldest first. Unlike the
// in-memory trail this survives restarts and the retention window.
func (s *Service) History(ctx context.Context, nodeID string) ([]trail.Sample, error) {
	if s.db == nil {
		return nil, errors.New("position history unavailable without a database")
	}
	rows, err := s.db.Query(ctx, `
		SELECT ST_Y(location::geometry), ST_X(location::geometry), recorded_at
		FROM node_positions WHERE node_id=$1
		ORDER BY recorded_at
	`, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []trail.Sample
	for rows.Next() {
		var sm trail.Sample
		if err := rows.Scan(&sm.Lat, &sm.Lng, &sm.Timestamp); err != nil {
			return nil, err
		}
		samples = append(samples, sm)
	}
	return samples, nil
}
