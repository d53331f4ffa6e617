package details

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

func newApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/v1"), svc)
	return app
}

func TestGetDetailsHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT trip_id::text, title, drive_rating`).
		WithArgs(tripID).
		WillReturnRows(pgxmock.NewRows([]string{
			"trip_id", "title", "drive_rating", "traffic_rating", "tags", "note", "updated_at",
		}).AddRow(tripID, "Coast run", (*int)(nil), (*int)(nil), []byte(`[]`), "", time.Now()))

	app := newApp(NewService(mock))
	req := httptest.NewRequest(http.MethodGet, "/v1/trips/"+tripID+"/details", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %d (%v)", resp.StatusCode, err)
	}

	var out Details
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Title != "Coast run" {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestGetDetailsHandlerBadID(t *testing.T) {
	app := newApp(NewService(nil))
	req := httptest.NewRequest(http.MethodGet, "/v1/trips/nope/details", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d (%v)", resp.StatusCode, err)
	}
}

func TestPutDetailsHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO trip_details`).
		WithArgs(tripID, "Night drive", (*int)(nil), (*int)(nil), []byte(`["night"]`), "").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	app := newApp(NewService(mock))
	body, _ := json.Marshal(UpsertRequest{Title: "Night drive", Tags: []string{"night"}})
	req := httptest.NewRequest(http.MethodPut, "/v1/trips/"+tripID+"/details", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("put status: %d (%v)", resp.StatusCode, err)
	}
}

func TestPutDetailsHandlerBadPayload(t *testing.T) {
	app := newApp(NewService(nil))
	req := httptest.NewRequest(http.MethodPut, "/v1/trips/"+tripID+"/details", bytes.NewReader([]byte(`nope`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d (%v)", resp.StatusCode, err)
	}
}
