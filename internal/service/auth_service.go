package service

import (
	"time"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/repository"
	"github.com/SodaPop-byte/Casa-Orencia-App/pkg/jwt"
	"github.com/SodaPop-byte/Casa-Orencia-App/pkg/validator"
)

type RegisterRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Birthday *time.Time `json:"birthday"`
	Role     string     `json:"role" validate:"omitempty,oneof=reseller admin"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(email, password string) (*LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperr.Conflict("email already in use")
	}

	role := req.Role
	if role == "" {
		role = model.RoleReseller
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: req.Birthday,
		Role:      role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// Unknown email and wrong password return the same error on purpose.
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, apperr.Authentication("invalid email or password")
	}
	if !user.CheckPassword(password) {
		return nil, apperr.Authentication("invalid email or password")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
