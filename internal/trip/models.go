package trip

import "time"

// Trip is the server-side trip row. Path is an ordered array of [lat, lng]
// pairs, stored as jsonb.
type Trip struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	StartedAt     time.Time      `json:"startedAt"`
	EndedAt       time.Time      `json:"endedAt"`
	DurationMs    int64          `json:"durationMs"`
	DistanceMiles float64        `json:"distanceMiles"`
	StartLabel    string         `json:"startLabel"`
	EndLabel      string         `json:"endLabel"`
	Path          [][2]float64   `json:"path"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewTrip is the client payload for creating a trip. The id is optional;
// the server generates one when absent.
type NewTrip struct {
	ID            string         `json:"id,omitempty"`
	StartedAt     string         `json:"startedAt"`
	EndedAt       string         `json:"endedAt"`
	DurationMs    int64          `json:"durationMs"`
	DistanceMiles float64        `json:"distanceMiles"`
	StartLabel    string         `json:"startLabel"`
	EndLabel      string         `json:"endLabel"`
	Path          [][2]float64   `json:"path"`
	Details       map[string]any `json:"details,omitempty"`
}

type CreateRequest struct {
	UserID string  `json:"userId"`
	Trip   NewTrip `json:"trip"`
}
