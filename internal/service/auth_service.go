package service

import (
	"fmt"
	"time"

	"github.com/edutrack/backend/config"
	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.UserResponseDTO, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	Profile(caller Identity) (*dto.UserResponseDTO, error)
	ParseToken(token string) (*Identity, error)
}

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	return &authService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: time.Duration(cfg.TokenTTL) * time.Hour,
	}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserResponseDTO, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Register: failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var resp dto.UserResponseDTO
	if err := copier.Copy(&resp, &user); err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return &resp, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	var userDTO dto.UserResponseDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: userDTO}, nil
}

func (s *authService) Profile(caller Identity) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", caller.UserID, err)
	}
	var resp dto.UserResponseDTO
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return &resp, nil
}

// ParseToken validates a bearer token and returns the identity it carries.
func (s *authService) ParseToken(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
