package media

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func stubAuth(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestAttachPhotoHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO trip_photos`).
		WithArgs(pgxmock.AnyArg(), tripID, userID, baseURL+"sunset.jpg", "golden hour").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/v1"), NewService(mock), stubAuth(userID))

	body, _ := json.Marshal(map[string]string{"fileName": "sunset.jpg", "caption": "golden hour"})
	req := httptest.NewRequest(http.MethodPost, "/v1/trips/"+tripID+"/photos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("attach status: %d (%v)", resp.StatusCode, err)
	}

	var out Photo
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.PhotoURL != baseURL+"sunset.jpg" {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestAttachPhotoHandlerBadName(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/v1"), NewService(nil), stubAuth(userID))

	body, _ := json.Marshal(map[string]string{"fileName": "../escape.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/v1/trips/"+tripID+"/photos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d (%v)", resp.StatusCode, err)
	}
}

func TestListPhotosHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id::text, trip_id::text, user_id::text, photo_url`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "trip_id", "user_id", "photo_url", "caption", "created_at",
		}).AddRow(photoID, tripID, userID, baseURL+"sunset.jpg", "", time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/v1"), NewService(mock), stubAuth(userID))

	req := httptest.NewRequest(http.MethodGet, "/v1/trips/"+tripID+"/photos", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %d (%v)", resp.StatusCode, err)
	}
}
