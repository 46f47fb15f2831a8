package services

import (
	"errors"
	"time"

	"aquaroom/internal/domain"
	"aquaroom/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrBadToken = errors.New("invalid or expired token")
)

type AuthService struct {
	Users     *repos.UserRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, JWTSecret: []byte(secret), TokenTTL: 12 * time.Hour}
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// IssueToken mints a bearer token for the separate API surface. Session
// cookies stay the primary auth path for the admin UI.
func (s *AuthService) IssueToken(email, password string) (string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.TokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.JWTSecret)
}

// TokenUser resolves a bearer token back to its user.
func (s *AuthService) TokenUser(tokenString string) (*domain.User, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, ErrBadToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrBadToken
	}
	return s.Users.ByID(sub)
}
