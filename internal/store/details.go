package store

import (
	"encoding/json"

	"github.com/oooAHOYooo/pathr/internal/shared/trip"
)

const detailsKey = "pathr.tripDetails.v1"

// DetailsStore keeps post-trip annotations as a JSON object mapping trip id
// to details, under its own fixed key. Unlike TripStore it supports upsert.
type DetailsStore struct {
	storage Storage
}

func NewDetailsStore(storage Storage) *DetailsStore {
	return &DetailsStore{storage: storage}
}

func (s *DetailsStore) loadAll() map[string]trip.Details {
	raw, ok := s.storage.Get(detailsKey)
	if !ok {
		return map[string]trip.Details{}
	}
	var all map[string]trip.Details
	if err := json.Unmarshal([]byte(raw), &all); err != nil || all == nil {
		return map[string]trip.Details{}
	}
	return all
}

// Get returns the annotation for a trip id, if any.
func (s *DetailsStore) Get(tripID string) (trip.Details, bool) {
	d, ok := s.loadAll()[tripID]
	return d, ok
}

// Upsert replaces the annotation for a trip id and writes the map back.
func (s *DetailsStore) Upsert(tripID string, details trip.Details) error {
	all := s.loadAll()
	all[tripID] = details
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.storage.Set(detailsKey, string(raw))
}
