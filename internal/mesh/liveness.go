package mesh

import "time"

// Tier classifies a node by how recently it was heard.
type Tier string

const (
	TierActive Tier = "active"
	TierRecent Tier = "recent"
	TierStale  Tier = "stale"
)

const (
	activeWindow = 5 * time.Minute
	recentWindow = 30 * time.Minute
)

// Classify maps a last-contact timestamp to a liveness tier. Bands are closed
// on the lower bound and open on the upper bound: a node heard exactly five
// minutes ago is recent, exactly thirty minutes ago is stale.
func Classify(lastHeard, now time.Time) Tier {
	age := now.Sub(lastHeard)
	switch {
	case age < activeWindow:
		return TierActive
	case age < recentWindow:
		return TierRecent
	default:
		return TierStale
	}
}

type Counts struct {
	WithPosition int `json:"with_position"`
	Active       int `json:"active"`
	Recent       int `json:"recent"`
}

// CountNodes derives the aggregate marker counts for a snapshot.
func CountNodes(nodes []Node, now time.Time) Counts {
	var c Counts
	for _, n := range nodes {
		if n.Position != nil {
			c.WithPosition++
		}
		switch Classify(n.LastHeard, now) {
		case TierActive:
			c.Active++
		case TierRecent:
			c.Recent++
		}
	}
	return c
}
