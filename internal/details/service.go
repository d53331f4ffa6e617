package details

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oooAHOYooo/pathr/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Get loads the annotations for a trip. A trip with no annotations yet
// returns an empty Details rather than an error.
func (s *Service) Get(ctx context.Context, tripID string) (Details, error) {
	if uuid.Validate(tripID) != nil {
		return Details{}, errors.New("trip id must be a uuid")
	}

	row := s.db.QueryRow(ctx, `
		SELECT trip_id::text, title, drive_rating, traffic_rating, tags, note, updated_at
		FROM trip_details WHERE trip_id = $1
	`, tripID)

	var d Details
	var tagsRaw []byte
	err := row.Scan(&d.TripID, &d.Title, &d.DriveRating, &d.TrafficRating, &tagsRaw, &d.Note, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Details{TripID: tripID, Tags: []string{}}, nil
	}
	if err != nil {
		return Details{}, err
	}

	d.Tags = []string{}
	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &d.Tags); err != nil {
			return Details{}, err
		}
	}
	return d, nil
}

// Upsert replaces the annotations for a trip in full.
func (s *Service) Upsert(ctx context.Context, tripID string, input UpsertRequest) (Details, error) {
	if uuid.Validate(tripID) != nil {
		return Details{}, errors.New("trip id must be a uuid")
	}
	if err := validateRating(input.DriveRating); err != nil {
		return Details{}, err
	}
	if err := validateRating(input.TrafficRating); err != nil {
		return Details{}, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return Details{}, err
	}

	d := Details{
		TripID:        tripID,
		Title:         input.Title,
		DriveRating:   input.DriveRating,
		TrafficRating: input.TrafficRating,
		Tags:          tags,
		Note:          input.Note,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_details (trip_id, title, drive_rating, traffic_rating, tags, note, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, now())
		ON CONFLICT (trip_id) DO UPDATE
		SET title=EXCLUDED.title, drive_rating=EXCLUDED.drive_rating,
		    traffic_rating=EXCLUDED.traffic_rating, tags=EXCLUDED.tags,
		    note=EXCLUDED.note, updated_at=now()
		RETURNING updated_at
	`, d.TripID, d.Title, d.DriveRating, d.TrafficRating, tagsJSON, d.Note)
	if err := row.Scan(&d.UpdatedAt); err != nil {
		return Details{}, err
	}
	return d, nil
}

func validateRating(r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
