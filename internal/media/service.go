package media

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oooAHOYooo/pathr/internal/db"
)

// baseURL is where uploaded originals land. The API only stores the
// resulting URL; the upload itself happens client-side against signed
// object storage.
const baseURL = "https://media.pathr.app/"

type Photo struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	UserID    string    `json:"userId"`
	PhotoURL  string    `json:"photoUrl"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	db db.Querier

	newID func() string
}

func NewService(q db.Querier) *Service {
	return &Service{db: q, newID: uuid.NewString}
}

// AttachPhoto records a photo against a trip and returns the stored row.
func (s *Service) AttachPhoto(ctx context.Context, tripID, userID, fileName, caption string) (Photo, error) {
	if uuid.Validate(tripID) != nil {
		return Photo{}, errors.New("trip id must be a uuid")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || strings.ContainsAny(fileName, "/\\") {
		return Photo{}, errors.New("fileName must be a bare file name")
	}

	photo := Photo{
		ID:       s.newID(),
		TripID:   tripID,
		UserID:   userID,
		PhotoURL: baseURL + fileName,
		Caption:  caption,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_photos (id, trip_id, user_id, photo_url, caption)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, photo.ID, photo.TripID, photo.UserID, photo.PhotoURL, photo.Caption)
	if err := row.Scan(&photo.CreatedAt); err != nil {
		return Photo{}, err
	}
	return photo, nil
}

// Photos lists a trip's photos, oldest first.
func (s *Service) Photos(ctx context.Context, tripID string) ([]Photo, error) {
	if uuid.Validate(tripID) != nil {
		return nil, errors.New("trip id must be a uuid")
	}

	rows, err := s.db.Query(ctx, `
		SELECT id::text, trip_id::text, user_id::text, photo_url, caption, created_at
		FROM trip_photos WHERE trip_id = $1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.TripID, &p.UserID, &p.PhotoURL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}
