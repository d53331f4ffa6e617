package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oooAHOYooo/pathr/internal/db"
)

const feedLimit = 50

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Follow records that followerID follows the user named by username.
// Following someone twice is a no-op; following yourself is an error.
func (s *Service) Follow(ctx context.Context, followerID, username string) error {
	followingID, err := s.userIDByName(ctx, username)
	if err != nil {
		return err
	}
	if followingID == followerID {
		return errors.New("cannot follow yourself")
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	return err
}

// Unfollow removes a follow edge. Unfollowing someone you never followed
// succeeds quietly.
func (s *Service) Unfollow(ctx context.Context, followerID, username string) error {
	followingID, err := s.userIDByName(ctx, username)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	return err
}

// Following lists the usernames the user currently follows.
func (s *Service) Following(ctx context.Context, followerID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.username
		FROM user_follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Feed returns the newest trips from the user and everyone they follow.
func (s *Service) Feed(ctx context.Context, userID string) ([]FeedTrip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.id::text, t.user_id::text, u.username, t.started_at, t.ended_at,
		       t.duration_ms, t.distance_miles, t.start_label, t.end_label
		FROM trips t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1
		   OR t.user_id IN (SELECT following_id FROM user_follows WHERE follower_id = $1)
		ORDER BY t.started_at DESC
		LIMIT `+fmt.Sprint(feedLimit), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feed := []FeedTrip{}
	for rows.Next() {
		var t FeedTrip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Username, &t.StartedAt, &t.EndedAt,
			&t.DurationMs, &t.DistanceMiles, &t.StartLabel, &t.EndLabel); err != nil {
			return nil, err
		}
		feed = append(feed, t)
	}
	return feed, nil
}

func (s *Service) userIDByName(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("username required")
	}
	var id string
	err := s.db.QueryRow(ctx, `SELECT id::text FROM users WHERE username = $1`, username).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", errors.New("user not found")
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
