package trip

// TripPoint is a single GPS sample. Immutable once recorded; Timestamp is
// milliseconds since epoch.
type TripPoint struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// Trip is a completed (or in-progress) recording. Timestamps are ISO 8601
// strings so stored payloads stay byte-compatible with the web clients.
type Trip struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	Name            string   `json:"name,omitempty"`
	StartedAt       string   `json:"startedAt"`
	EndedAt         string   `json:"endedAt,omitempty"`
	DistanceMeters  *float64 `json:"distanceMeters,omitempty"`
	DurationSeconds *int64   `json:"durationSeconds,omitempty"`
	AvgSpeedKmh     *float64 `json:"avgSpeedKmh,omitempty"`
	MaxSpeedKmh     *float64 `json:"maxSpeedKmh,omitempty"`
	IsPrivate       bool     `json:"isPrivate"`
	ShareToken      string   `json:"shareToken,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// StoredTrip is the local-persistence envelope: trip metadata plus its full
// point sequence.
type StoredTrip struct {
	Trip   Trip        `json:"trip"`
	Points []TripPoint `json:"points"`
}

// Details is the freeform post-trip annotation, stored independently of the
// trip itself and keyed by trip id.
type Details struct {
	Title         string   `json:"title"`
	DriveRating   *int     `json:"driveRating"`   // 1-5
	TrafficRating *int     `json:"trafficRating"` // 1-5
	Tags          []string `json:"tags"`
	Note          string   `json:"note"`
	UpdatedAt     string   `json:"updatedAt"`
}
