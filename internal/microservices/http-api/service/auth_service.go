package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamereviews/internal/config"
	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/repository"
	"gamereviews/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const tokenIssuer = "gamereviews"

// compared against when the email is unknown so both failure paths cost one bcrypt comparison
var dummyHash = func() string {
	h, err := auth.HashPassword("no-such-user-placeholder")
	if err != nil {
		panic(err)
	}
	return h
}()

// Claims carried by an access token. The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (accessToken string, user *models.User, err error)
	IssueToken(email string) (string, error)
	ValidateToken(tokenString string) (email string, err error)
	CurrentUser(ctx context.Context, tokenString string) (*models.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo       repository.UserRepository
	jwtSecret      string
	accessTokenTTL time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:       userRepo,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// Register: registers a new user with the given username, email and password.
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := firstError(validateUsername(username), validateEmail(email), validatePassword(password)); err != nil {
		return nil, err
	}

	// Check if user exists
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}

	// unique indexes still guard against a concurrent registration slipping past the lookups
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("email", "Username or email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email, a wrong
// password or an inactive account alike.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		auth.VerifyPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login: authenticates a user and returns an access token upon success.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	accessToken, err := s.IssueToken(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return accessToken, user, nil
}

func (s *authService) IssueToken(email string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks signature, issuer and expiry and returns the subject email.
func (s *authService) ValidateToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// CurrentUser resolves a bearer token to its user. A token whose user was
// deleted after issuance is rejected here.
func (s *authService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	email, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup token subject: %w", err)
	}
	return user, nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.accessTokenTTL
}
