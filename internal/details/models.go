package details

import "time"

// Details is a user's annotation layer over a recorded trip. Ratings are
// 1-5 and optional; tags are free-form strings stored as jsonb.
type Details struct {
	TripID        string    `json:"tripId"`
	Title         string    `json:"title"`
	DriveRating   *int      `json:"driveRating,omitempty"`
	TrafficRating *int      `json:"trafficRating,omitempty"`
	Tags          []string  `json:"tags"`
	Note          string    `json:"note"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UpsertRequest is the PUT payload. Absent ratings clear the stored value.
type UpsertRequest struct {
	Title         string   `json:"title"`
	DriveRating   *int     `json:"driveRating"`
	TrafficRating *int     `json:"trafficRating"`
	Tags          []string `json:"tags"`
	Note          string   `json:"note"`
}
