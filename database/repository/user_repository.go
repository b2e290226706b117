package repository

import (
	"quipvid/database/model"

	"gorm.io/gorm"
)

// UserRepository defines data access for panel users.
type UserRepository interface {
	FindFirst() (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdatePassword(id int, hashedPassword string) error

	GetDB() *gorm.DB
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *userRepository) FindFirst() (*model.User, error) {
	user := &model.User{}
	err := r.db.Model(model.User{}).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.Model(model.User{}).Where("username = ?", username).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdatePassword(id int, hashedPassword string) error {
	return r.db.Model(model.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}
