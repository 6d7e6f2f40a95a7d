package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether a user with this email is already registered.
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var user model.User
	err := r.db.Select("id").First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) UpdateMetadata(id string, metadata string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("metadata", metadata).Error
}

func (r *UserRepository) MarkEmailConfirmed(id string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("email_confirmed_at", gorm.Expr("NOW()")).Error
}
