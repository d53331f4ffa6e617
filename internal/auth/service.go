package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/oooAHOYooo/pathr/internal/db"
)

const (
	accessTokenTTL = 24 * time.Hour
	shareTokenTTL  = 30 * 24 * time.Hour
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type Service struct {
	secret []byte
	db     db.Querier
}

type Claims struct {
	UserID string `json:"user_id,omitempty"`
	TripID string `json:"trip_id,omitempty"`
	jwt.RegisteredClaims
}

func NewService(secret string, q db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     q,
	}
}

// NormalizeUsername lowercases and validates a username: 3-20 characters
// from [a-z0-9_].
func NormalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))
	if len(username) < 3 || len(username) > 20 || !usernamePattern.MatchString(username) {
		return "", errors.New("invalid signup payload")
	}
	return username, nil
}

// Signup creates or fetches the user for a username. The upsert is
// idempotent: an existing username returns its canonical row unchanged.
func (s *Service) Signup(ctx context.Context, rawUsername string) (User, error) {
	username, err := NormalizeUsername(rawUsername)
	if err != nil {
		return User{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (username)
		VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id::text, username
	`, username)

	var user User
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		return User{}, err
	}
	return user, nil
}

// SetPassword upgrades a username-only account with a bcrypt credential.
func (s *Service) SetPassword(ctx context.Context, userID, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, userID, string(hash))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}

// Login verifies a password-upgraded account and issues an access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (User, TokenResponse, error) {
	username, err := NormalizeUsername(req.Username)
	if err != nil {
		return User{}, TokenResponse{}, err
	}

	row := s.db.QueryRow(ctx, `
		SELECT id::text, username, COALESCE(password_hash, '')
		FROM users WHERE username = $1
	`, username)

	var user User
	var hash string
	if err := row.Scan(&user.ID, &user.Username, &hash); err != nil {
		return User{}, TokenResponse{}, errors.New("invalid credentials")
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return User{}, TokenResponse{}, errors.New("invalid credentials")
	}

	access, err := s.signToken(Claims{UserID: user.ID}, accessTokenTTL)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return user, TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken returns the user id carried by a valid access token.
func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", errors.New("token invalid")
	}
	return claims.UserID, nil
}

// SignShareToken mints the opaque token behind a trip share link.
func (s *Service) SignShareToken(tripID string) (string, error) {
	return s.signToken(Claims{TripID: tripID}, shareTokenTTL)
}

// VerifyShareToken resolves a share token back to its trip id.
func (s *Service) VerifyShareToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	if claims.TripID == "" {
		return "", errors.New("token invalid")
	}
	return claims.TripID, nil
}

func (s *Service) signToken(claims Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
