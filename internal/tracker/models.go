package tracker

import (
	"time"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/mesh"
)

// NodeView is one node as presented on the map: the raw snapshot plus its
// derived liveness tier.
type NodeView struct {
	mesh.Node
	Tier mesh.Tier `json:"tier"`
}

// TickResult summarizes one applied snapshot.
type TickResult struct {
	TickID   string      `json:"tick_id"`
	At       time.Time   `json:"at"`
	Nodes    int         `json:"nodes"`
	Appended int         `json:"appended"`
	Counts   mesh.Counts `json:"counts"`
}
