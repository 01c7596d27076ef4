package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookhaven/internal/domain"
	"bookhaven/internal/repos"
	"bookhaven/internal/validate"
)

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

// Claims is the bearer credential payload: identity in Subject, privilege
// in Role, fixed expiry.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a customer account and issues its first token.
func (s *AuthService) Register(fullName, email, password string) (*domain.User, string, error) {
	if errs := validate.Registration(fullName, email, password); errs.Any() {
		return nil, "", errs
	}
	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := domain.User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Email:    email,
		Hash:     string(hash),
		Role:     domain.Customer,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, "", err
	}

	tok, err := s.Token(&u)
	if err != nil {
		return nil, "", err
	}
	return &u, tok, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	tok, err := s.Token(u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) Token(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// UserFromToken verifies the bearer token and resolves the current user
// record, so a deleted account is rejected even with a valid signature.
func (s *AuthService) UserFromToken(token string) (*domain.User, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(claims.Subject)
}

// UpdateProfile mutates name/email; the password field is excluded from
// profile updates by design.
func (s *AuthService) UpdateProfile(u *domain.User, fullName, email string) (*domain.User, error) {
	if fullName == "" {
		fullName = u.FullName
	}
	if email == "" {
		email = u.Email
	}
	if !validate.Email(email) {
		return nil, validate.FieldErrors{"A valid email is required"}
	}
	if email != u.Email {
		taken, err := s.Users.EmailTaken(email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}
	if err := s.Users.UpdateProfile(u.ID, fullName, email); err != nil {
		return nil, err
	}
	return s.Users.ByID(u.ID)
}
