package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func newApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/v1"), svc)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestSignupHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username"}).AddRow("user-1", "driver_1"))

	app := newApp(NewService("secret", mock))
	resp := postJSON(t, app, "/v1/signup", SignupRequest{Username: "Driver_1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var out map[string]string
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["userId"] != "user-1" || out["username"] != "driver_1" {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestSignupHandlerInvalidUsername(t *testing.T) {
	app := newApp(NewService("secret", nil))
	resp := postJSON(t, app, "/v1/signup", SignupRequest{Username: "x"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestSignupHandlerIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("driver_1").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username"}).AddRow("user-1", "driver_1"))
	}

	app := newApp(NewService("secret", mock))
	for i := 0; i < 2; i++ {
		resp := postJSON(t, app, "/v1/signup", SignupRequest{Username: "driver_1"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected duplicate signup to succeed, got %d", resp.StatusCode)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPasswordHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := newApp(NewService("secret", mock))
	resp := postJSON(t, app, "/v1/auth/password", PasswordRequest{UserID: "user-1", Password: "longenough"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestPasswordHandlerMissingFields(t *testing.T) {
	app := newApp(NewService("secret", nil))
	resp := postJSON(t, app, "/v1/auth/password", PasswordRequest{UserID: "user-1"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestLoginHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id::text, username`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow("user-1", "driver_1", string(hash)))

	app := newApp(NewService("secret", mock))
	resp := postJSON(t, app, "/v1/auth/login", LoginRequest{Username: "driver_1", Password: "longenough"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id::text, username`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow("user-1", "driver_1", ""))

	app := newApp(NewService("secret", mock))
	resp := postJSON(t, app, "/v1/auth/login", LoginRequest{Username: "driver_1", Password: "whatever1"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}
