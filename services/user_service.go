package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/models"
	"storefront-backend/repository"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService handles account registration, login and profile management.
type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, *ServiceError)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, *ServiceError)
	GetProfile(ctx context.Context, userID string) (*models.User, *ServiceError)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, *ServiceError)
	ListUsers(ctx context.Context) ([]models.User, *ServiceError)
	DeleteUser(ctx context.Context, userID string) *ServiceError
}

type userService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, jwtSecret string, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, jwtSecret: jwtSecret, logger: logger}
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, *ServiceError) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, newInternalError("Registration failed")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		Password: string(hash),
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newValidationError("Email already registered")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, newInternalError("Registration failed")
	}

	token, err := GenerateJWT(s.jwtSecret, user.ID.Hex(), user.Role)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, newInternalError("Registration failed")
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newUnauthorizedError("Invalid credentials")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, newInternalError("Login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, newUnauthorizedError("Invalid credentials")
	}

	token, err := GenerateJWT(s.jwtSecret, user.ID.Hex(), user.Role)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, newInternalError("Login failed")
	}

	return &AuthResponse{User: user, Token: token}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, *ServiceError) {
	return s.findUser(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, *ServiceError) {
	user, svcErr := s.findUser(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, newInternalError("Profile update failed")
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.String("user_id", userID), zap.Error(err))
		return nil, newInternalError("Profile update failed")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, *ServiceError) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, newInternalError("Failed to fetch users")
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) *ServiceError {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return newNotFoundError("User not found")
	}

	if err := s.userRepo.Delete(ctx, userOID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newNotFoundError("User not found")
		}
		s.logger.Error("Failed to delete user", zap.String("user_id", userID), zap.Error(err))
		return newInternalError("Failed to delete user")
	}
	return nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*models.User, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newNotFoundError("User not found")
	}

	user, err := s.userRepo.FindByID(ctx, userOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.String("user_id", userID), zap.Error(err))
		return nil, newInternalError("Failed to fetch user")
	}
	return user, nil
}
