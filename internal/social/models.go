package social

import "time"

type Follow struct {
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FeedTrip is a trip summary as it appears in a follower's feed. The full
// path is deliberately left out; feeds only need the headline numbers.
type FeedTrip struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	StartedAt     time.Time `json:"startedAt"`
	EndedAt       time.Time `json:"endedAt"`
	DurationMs    int64     `json:"durationMs"`
	DistanceMiles float64   `json:"distanceMiles"`
	StartLabel    string    `json:"startLabel"`
	EndLabel      string    `json:"endLabel"`
}
