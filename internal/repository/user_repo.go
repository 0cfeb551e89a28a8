package repository

import (
	"errors"
	"strings"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	// Emails compare case-insensitively; store the canonical form.
	user.Email = strings.ToLower(user.Email)
	err := r.db.Create(user).Error
	// The pre-insert lookup in the service can race with a concurrent
	// registration; the unique index on email is the backstop here.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("email already in use")
	}
	return err
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	return &user, err
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	return &user, err
}
