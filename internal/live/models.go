package live

import "time"

// Session is an in-progress drive being shared in real time. Distance
// accumulates server-side as points arrive.
type Session struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	DistanceMeters float64    `json:"distanceMeters"`
	Status         string     `json:"status"`
}

type Point struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"sessionId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	SpeedKmh   float64   `json:"speedKmh"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Summary struct {
	SessionID      string  `json:"sessionId"`
	Status         string  `json:"status"`
	PointCount     int     `json:"pointCount"`
	DistanceMeters float64 `json:"distanceMeters"`
	DurationSec    int64   `json:"durationSec"`
}
