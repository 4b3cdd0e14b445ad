package models

import "time"

// Snapshot is the current state of one map session: where the user is and the
// nearest place of every category.
type Snapshot struct {
	SessionID string                          `json:"session_id"`
	Origin    *Coordinate                     `json:"origin,omitempty"`
	Address   string                          `json:"address,omitempty"`
	Places    map[PlaceCategory]ResolvedPlace `json:"places"`
	Sequence  map[PlaceCategory]uint64        `json:"sequence"`
	UpdatedAt time.Time                       `json:"updated_at"`
}
