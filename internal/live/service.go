package live

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oooAHOYooo/pathr/internal/db"
	"github.com/oooAHOYooo/pathr/internal/shared/geo"
	"github.com/oooAHOYooo/pathr/internal/stream"
)

const (
	statusActive = "active"
	statusEnded  = "ended"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub

	now   func() time.Time
	newID func() string
}

func NewService(q db.Querier, hub *stream.Hub) *Service {
	return &Service{
		db:    q,
		hub:   hub,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// StartSession opens a live share for a user's drive in progress.
func (s *Service) StartSession(ctx context.Context, userID string) (Session, error) {
	if userID == "" {
		return Session{}, errors.New("userId required")
	}

	session := Session{
		ID:        s.newID(),
		UserID:    userID,
		StartedAt: s.now().UTC(),
		Status:    statusActive,
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO live_sessions (id, user_id, started_at, status)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.UserID, session.StartedAt, session.Status)
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

// AddPoint appends a GPS fix to an active session, extends the running
// distance by the leg from the previous fix, and fans the point out to
// websocket watchers.
func (s *Service) AddPoint(ctx context.Context, sessionID string, input Point) (Point, error) {
	if input.RecordedAt.IsZero() {
		input.RecordedAt = s.now().UTC()
	}

	var status string
	if err := s.db.QueryRow(ctx, `
		SELECT status FROM live_sessions WHERE id = $1
	`, sessionID).Scan(&status); err != nil {
		return Point{}, errors.New("session not found")
	}
	if status != statusActive {
		return Point{}, errors.New("session has ended")
	}

	var lastLat, lastLng float64
	hasPrev := true
	err := s.db.QueryRow(ctx, `
		SELECT lat, lng FROM live_points
		WHERE session_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, sessionID).Scan(&lastLat, &lastLng)
	if err != nil {
		hasPrev = false
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO live_points (session_id, lat, lng, speed_kmh, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, sessionID, input.Lat, input.Lng, input.SpeedKmh, input.RecordedAt)
	if err := row.Scan(&input.ID); err != nil {
		return Point{}, err
	}
	input.SessionID = sessionID

	if hasPrev {
		deltaM := geo.HaversineMeters(
			geo.Point{Lat: lastLat, Lng: lastLng},
			geo.Point{Lat: input.Lat, Lng: input.Lng},
		)
		if _, err := s.db.Exec(ctx, `
			UPDATE live_sessions SET distance_meters = distance_meters + $2 WHERE id = $1
		`, sessionID, deltaM); err != nil {
			return Point{}, err
		}
	}

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast(sessionID, payload)
	}
	return input, nil
}

// EndSession closes a live share. Ending twice is an error.
func (s *Service) EndSession(ctx context.Context, sessionID string) (Session, error) {
	endedAt := s.now().UTC()
	row := s.db.QueryRow(ctx, `
		UPDATE live_sessions
		SET status = $2, ended_at = $3
		WHERE id = $1 AND status = $4
		RETURNING id, user_id, started_at, ended_at, distance_meters, status
	`, sessionID, statusEnded, endedAt, statusActive)

	var session Session
	if err := row.Scan(&session.ID, &session.UserID, &session.StartedAt, &session.EndedAt,
		&session.DistanceMeters, &session.Status); err != nil {
		return Session{}, errors.New("active session not found")
	}

	if s.hub != nil {
		payload, _ := json.Marshal(map[string]string{"event": "ended", "sessionId": sessionID})
		s.hub.Broadcast(sessionID, payload)
	}
	return session, nil
}

// Summary reports where a live session stands right now.
func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	var session Session
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, started_at, ended_at, distance_meters, status
		FROM live_sessions WHERE id = $1
	`, sessionID)
	if err := row.Scan(&session.ID, &session.UserID, &session.StartedAt, &session.EndedAt,
		&session.DistanceMeters, &session.Status); err != nil {
		return Summary{}, errors.New("session not found")
	}

	var pointCount int
	if err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM live_points WHERE session_id = $1
	`, sessionID).Scan(&pointCount); err != nil {
		return Summary{}, err
	}

	end := s.now().UTC()
	if session.EndedAt != nil {
		end = *session.EndedAt
	}
	duration := end.Sub(session.StartedAt)
	if duration < 0 {
		duration = 0
	}

	return Summary{
		SessionID:      session.ID,
		Status:         session.Status,
		PointCount:     pointCount,
		DistanceMeters: session.DistanceMeters,
		DurationSec:    int64(duration.Seconds()),
	}, nil
}

// Points returns the full ordered track of a session.
func (s *Service) Points(ctx context.Context, sessionID string) ([]Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id::text, lat, lng, speed_kmh, recorded_at
		FROM live_points WHERE session_id = $1
		ORDER BY recorded_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []Point{}
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Lat, &p.Lng, &p.SpeedKmh, &p.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
