package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"savoria-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists with this email")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	bcryptCost      = 12
)

type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}

type AuthService struct {
	repo          UserRepository
	secret        []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewAuthService(repo UserRepository, secret, refreshSecret string) *AuthService {
	return &AuthService{
		repo:          repo,
		secret:        []byte(secret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
}

func (s *AuthService) Register(name, email, password, phone string) (*AuthResult, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if !domain.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.GetUserByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh verifies the refresh token, re-reads the user and issues a new
// access token. The refresh token itself is not rotated.
func (s *AuthService) Refresh(refreshToken string) (*AuthResult, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(int(userID))
	if err != nil {
		return nil, ErrInvalidToken
	}

	accessToken, err := s.signToken(jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    s.now().Add(accessTokenTTL).Unix(),
	}, s.secret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	accessToken, err := s.signToken(jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    s.now().Add(accessTokenTTL).Unix(),
	}, s.secret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.signToken(jwt.MapClaims{
		"userId": user.ID,
		"exp":    s.now().Add(refreshTokenTTL).Unix(),
	}, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

var _ AuthServiceInterface = (*AuthService)(nil)
