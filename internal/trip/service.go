package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oooAHOYooo/pathr/internal/db"
)

const listLimit = 200

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Create validates and persists a trip for a user, creating a stub user row
// first so the foreign key holds. A client-supplied id is honored; the
// server generates one otherwise.
func (s *Service) Create(ctx context.Context, userID string, input NewTrip) (string, error) {
	if err := validateCreate(userID, input); err != nil {
		return "", err
	}

	// Ensure user exists (simple foreign key requirement).
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, username) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING
	`, userID, "u_"+userID[:8])
	if err != nil {
		return "", err
	}

	path := input.Path
	if path == nil {
		path = [][2]float64{}
	}
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return "", err
	}

	var detailsJSON any
	if input.Details != nil {
		raw, err := json.Marshal(input.Details)
		if err != nil {
			return "", err
		}
		detailsJSON = raw
	}

	var tripID any
	if input.ID != "" {
		tripID = input.ID
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (
			id, user_id, started_at, ended_at, duration_ms, distance_miles, start_label, end_label, path, details
		)
		VALUES (
			COALESCE($1::uuid, gen_random_uuid()),
			$2::uuid, $3::timestamptz, $4::timestamptz, $5, $6, $7, $8, $9::jsonb, $10::jsonb
		)
		RETURNING id::text
	`, tripID, userID, input.StartedAt, input.EndedAt, input.DurationMs, input.DistanceMiles,
		input.StartLabel, input.EndLabel, pathJSON, detailsJSON)

	var id string
	if err := row.Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser returns the user's most recent trips, newest first, capped at
// 200 rows.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Trip, error) {
	if uuid.Validate(userID) != nil {
		return nil, errors.New("userId must be a uuid")
	}

	rows, err := s.db.Query(ctx, `
		SELECT id::text, user_id::text, started_at, ended_at, duration_ms, distance_miles,
		       start_label, end_label, path, details
		FROM trips
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT `+fmt.Sprint(listLimit), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// GetByID loads a single trip row.
func (s *Service) GetByID(ctx context.Context, tripID string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id::text, user_id::text, started_at, ended_at, duration_ms, distance_miles,
		       start_label, end_label, path, details
		FROM trips
		WHERE id = $1
	`, tripID)
	return scanTrip(row)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTrip(row scannable) (Trip, error) {
	var t Trip
	var pathRaw []byte
	var detailsRaw []byte
	if err := row.Scan(&t.ID, &t.UserID, &t.StartedAt, &t.EndedAt, &t.DurationMs, &t.DistanceMiles,
		&t.StartLabel, &t.EndLabel, &pathRaw, &detailsRaw); err != nil {
		return Trip{}, err
	}

	t.Path = [][2]float64{}
	if len(pathRaw) > 0 {
		if err := json.Unmarshal(pathRaw, &t.Path); err != nil {
			return Trip{}, err
		}
	}
	if len(detailsRaw) > 0 {
		if err := json.Unmarshal(detailsRaw, &t.Details); err != nil {
			return Trip{}, err
		}
	}
	return t, nil
}

func validateCreate(userID string, input NewTrip) error {
	if uuid.Validate(userID) != nil {
		return errors.New("userId must be a uuid")
	}
	if input.ID != "" && uuid.Validate(input.ID) != nil {
		return errors.New("trip id must be a uuid")
	}
	if _, err := time.Parse(time.RFC3339, input.StartedAt); err != nil {
		return errors.New("startedAt must be a timestamp")
	}
	if _, err := time.Parse(time.RFC3339, input.EndedAt); err != nil {
		return errors.New("endedAt must be a timestamp")
	}
	if input.DurationMs < 0 {
		return errors.New("durationMs must be non-negative")
	}
	if input.DistanceMiles < 0 {
		return errors.New("distanceMiles must be non-negative")
	}
	// A path with a single point can never be a valid trip line.
	if len(input.Path) == 1 {
		return errors.New("path requires at least two points")
	}
	return nil
}
