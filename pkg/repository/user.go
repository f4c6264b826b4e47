package repository

import (
	"shareit/pkg/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetAll() ([]models.User, error)
	Save(user *models.User) error
	Delete(user *models.User) error
	HasRelatedRecords(userID uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *models.User) error {
	return r.db.Delete(user).Error
}

// HasRelatedRecords reports whether the user still owns items, holds
// bookings, or has open item requests.
func (r *userRepository) HasRelatedRecords(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("owner_id = ?", userID).Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}
	err = r.db.Model(&models.Booking{}).Where("booker_id = ?", userID).Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}
	err = r.db.Model(&models.ItemRequest{}).Where("requester_id = ?", userID).Count(&count).Error
	return count > 0, err
}
