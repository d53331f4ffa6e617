package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

var errQuery = errors.New("query error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  Roadtrip_99 ", "roadtrip_99", false},
		{"abc", "abc", false},
		{"ab", "", true},
		{"this_name_is_way_too_long", "", true},
		{"bad name", "", true},
		{"emoji🚗", "", true},
	}
	for _, c := range cases {
		got, err := NormalizeUsername(c.in)
		if c.wantErr != (err != nil) || got != c.want {
			t.Fatalf("NormalizeUsername(%q) = %q, %v", c.in, got, err)
		}
	}
}

func TestSignupUpsert(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username"}).AddRow("user-1", "driver_1"))

	svc := NewService("secret", mock)
	user, err := svc.Signup(context.Background(), "  Driver_1 ")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID != "user-1" || user.Username != "driver_1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignupInvalidUsername(t *testing.T) {
	svc := NewService("secret", nil)
	if _, err := svc.Signup(context.Background(), "no"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSignupQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO users`).WithArgs("driver_1").WillReturnError(errQuery)

	svc := NewService("secret", mock)
	if _, err := svc.Signup(context.Background(), "driver_1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSetPassword(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService("secret", mock)
	if err := svc.SetPassword(context.Background(), "user-1", "longenough"); err != nil {
		t.Fatalf("set password: %v", err)
	}
}

func TestSetPasswordTooShort(t *testing.T) {
	svc := NewService("secret", nil)
	if err := svc.SetPassword(context.Background(), "user-1", "short"); err == nil {
		t.Fatalf("expected length error")
	}
}

func TestSetPasswordUnknownUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("user-404", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	svc := NewService("secret", mock)
	if err := svc.SetPassword(context.Background(), "user-404", "longenough"); err == nil {
		t.Fatalf("expected user not found error")
	}
}

func TestLoginAndValidate(t *testing.T) {
	mock := newMock(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id::text, username`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow("user-1", "driver_1", string(hash)))

	svc := NewService("secret", mock)
	user, tokens, err := svc.Login(context.Background(), LoginRequest{Username: "driver_1", Password: "longenough"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "user-1" || tokens.AccessToken == "" || tokens.TokenType != "Bearer" {
		t.Fatalf("unexpected login result: %+v %+v", user, tokens)
	}

	userID, err := svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil || userID != "user-1" {
		t.Fatalf("validate: %q %v", userID, err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	mock := newMock(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id::text, username`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow("user-1", "driver_1", string(hash)))

	svc := NewService("secret", mock)
	if _, _, err := svc.Login(context.Background(), LoginRequest{Username: "driver_1", Password: "wrongpassword"}); err == nil {
		t.Fatalf("expected credentials error")
	}
}

func TestLoginWithoutPasswordUpgrade(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id::text, username`).
		WithArgs("driver_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash"}).
			AddRow("user-1", "driver_1", ""))

	svc := NewService("secret", mock)
	if _, _, err := svc.Login(context.Background(), LoginRequest{Username: "driver_1", Password: "whatever1"}); err == nil {
		t.Fatalf("expected credentials error for username-only account")
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", nil)

	token, err := svc.SignShareToken("trip-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	tripID, err := svc.VerifyShareToken(token)
	if err != nil || tripID != "trip-1" {
		t.Fatalf("verify: %q %v", tripID, err)
	}
}

func TestShareTokenWrongKind(t *testing.T) {
	svc := NewService("secret", nil)

	access, err := svc.signToken(Claims{UserID: "user-1"}, accessTokenTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.VerifyShareToken(access); err == nil {
		t.Fatalf("expected access token to fail share verification")
	}

	share, _ := svc.SignShareToken("trip-1")
	if _, err := svc.ValidateAccessToken(share); err == nil {
		t.Fatalf("expected share token to fail access validation")
	}
}

func TestVerifyShareTokenWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", nil).SignShareToken("trip-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewService("secret-b", nil).VerifyShareToken(token); err == nil {
		t.Fatalf("expected signature error")
	}
}
