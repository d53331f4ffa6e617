package db

import "context"

// Schema bootstrap stays tiny on purpose; anything beyond this belongs in
// real migration files.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		username text UNIQUE NOT NULL,
		password_hash text,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		started_at timestamptz NOT NULL,
		ended_at timestamptz NOT NULL,
		duration_ms integer NOT NULL,
		distance_miles double precision NOT NULL,
		start_label text NOT NULL DEFAULT '',
		end_label text NOT NULL DEFAULT '',
		path jsonb NOT NULL DEFAULT '[]'::jsonb,
		details jsonb,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS trips_user_started_idx ON trips(user_id, started_at DESC)`,
	`CREATE TABLE IF NOT EXISTS trip_details (
		trip_id uuid PRIMARY KEY,
		title text NOT NULL DEFAULT '',
		drive_rating integer,
		traffic_rating integer,
		tags jsonb NOT NULL DEFAULT '[]'::jsonb,
		note text NOT NULL DEFAULT '',
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS trip_photos (
		id uuid PRIMARY KEY,
		trip_id uuid NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		user_id uuid NOT NULL,
		photo_url text NOT NULL,
		caption text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_follows (
		follower_id uuid NOT NULL,
		following_id uuid NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, following_id)
	)`,
	`CREATE TABLE IF NOT EXISTS live_sessions (
		id uuid PRIMARY KEY,
		user_id text NOT NULL,
		started_at timestamptz NOT NULL,
		ended_at timestamptz,
		distance_meters double precision NOT NULL DEFAULT 0,
		status text NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS live_points (
		id bigserial PRIMARY KEY,
		session_id uuid NOT NULL REFERENCES live_sessions(id) ON DELETE CASCADE,
		lat double precision NOT NULL,
		lng double precision NOT NULL,
		speed_kmh double precision NOT NULL DEFAULT 0,
		recorded_at timestamptz NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables the API needs if they do not exist yet.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
