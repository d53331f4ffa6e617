package store

import (
	"encoding/json"

	"github.com/oooAHOYooo/pathr/internal/shared/trip"
)

const tripsKey = "pathr.trips.v1"

// TripStore is the ordered local trip collection: a single JSON array of
// StoredTrip envelopes under a fixed key, most recent first. Completed
// trips are append-only; there is no update or delete.
type TripStore struct {
	storage Storage
}

func NewTripStore(storage Storage) *TripStore {
	return &TripStore{storage: storage}
}

// Load deserializes the full collection. A missing key or malformed value
// is treated as an empty collection, never an error.
func (s *TripStore) Load() []trip.StoredTrip {
	raw, ok := s.storage.Get(tripsKey)
	if !ok {
		return []trip.StoredTrip{}
	}
	var trips []trip.StoredTrip
	if err := json.Unmarshal([]byte(raw), &trips); err != nil {
		return []trip.StoredTrip{}
	}
	return trips
}

// Append prepends the trip to the collection and writes the whole array
// back, keeping most-recent-first ordering.
func (s *TripStore) Append(stored trip.StoredTrip) error {
	trips := append([]trip.StoredTrip{stored}, s.Load()...)
	raw, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return s.storage.Set(tripsKey, string(raw))
}

// FindByID scans the collection for the first trip with the given id.
func (s *TripStore) FindByID(id string) (trip.StoredTrip, bool) {
	for _, st := range s.Load() {
		if st.Trip.ID == id {
			return st, true
		}
	}
	return trip.StoredTrip{}, false
}
