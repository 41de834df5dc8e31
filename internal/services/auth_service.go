package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields for new user registration.
type RegisterInput struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// LoginInput carries user credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput carries the fields a user may change on their own account.
type ProfileInput struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// TokenClaims represents the JWT claims issued at login.
type TokenClaims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login, and JWT token management.
type AuthService interface {
	Register(ctx context.Context, input *RegisterInput) (*models.TokenResponse, error)
	Login(ctx context.Context, input *LoginInput) (*models.TokenResponse, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *ProfileInput) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  int // Access token TTL in seconds
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTLSeconds int) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTLSeconds,
	}
}

func (s *authService) Register(ctx context.Context, input *RegisterInput) (*models.TokenResponse, error) {
	if err := common.ValidateRequiredString(input.FullName, "full_name"); err != nil {
		return nil, common.NewValidationError("full_name", err.Error())
	}
	if err := common.ValidateRequiredString(input.Email, "email"); err != nil {
		return nil, common.NewValidationError("email", err.Error())
	}
	if len(input.Password) < 8 {
		return nil, common.NewValidationError("password", "password must be at least 8 characters")
	}

	taken, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, common.NewValidationError("email", "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, input *LoginInput) (*models.TokenResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewValidationError("credentials", "invalid email or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, common.NewValidationError("credentials", "invalid email or password")
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:  user.ID.String(),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pos-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"pos-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokenTTL,
		UserID:      user.ID.String(),
		IssuedAt:    now,
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("user", id.String())
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, id uuid.UUID, input *ProfileInput) (*models.User, error) {
	if err := common.ValidateRequiredString(input.FullName, "full_name"); err != nil {
		return nil, common.NewValidationError("full_name", err.Error())
	}
	if err := common.ValidateRequiredString(input.Email, "email"); err != nil {
		return nil, common.NewValidationError("email", err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("user", id.String())
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if input.Email != user.Email {
		taken, err := s.userRepo.EmailExists(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, common.NewValidationError("email", "email already registered")
		}
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.Phone = input.Phone
	user.Address = input.Address
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
