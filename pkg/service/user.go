package service

import (
	"errors"
	"fmt"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"
	"shareit/pkg/models"
	"shareit/pkg/repository"

	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	users repository.UserRepository
}

func NewUserService(db *gorm.DB, users repository.UserRepository) *UserService {
	return &UserService{db: db, users: users}
}

func (s *UserService) Create(in *dto.CreateUserInput) (dto.User, error) {
	if fields := in.Validate(); len(fields) > 0 {
		return dto.User{}, httperr.Validation(fields)
	}
	user := &models.User{Name: in.Name, Email: in.Email}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.users.WithTx(tx).Create(user)
	})
	if err != nil {
		return dto.User{}, err
	}
	return dto.FromUser(user), nil
}

func (s *UserService) GetByID(userID uint) (dto.User, error) {
	user, err := s.GetEntity(userID)
	if err != nil {
		return dto.User{}, err
	}
	return dto.FromUser(user), nil
}

func (s *UserService) GetAll() ([]dto.User, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(users), nil
}

// Update touches only the fields present in the request.
func (s *UserService) Update(userID uint, in *dto.UpdateUserInput) (dto.User, error) {
	if fields := in.Validate(); len(fields) > 0 {
		return dto.User{}, httperr.Validation(fields)
	}
	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		var err error
		user, err = users.GetByID(userID)
		if err != nil {
			return mapUserErr(userID, err)
		}
		if in.Name != nil {
			user.Name = *in.Name
		}
		if in.Email != nil {
			user.Email = *in.Email
		}
		return users.Save(user)
	})
	if err != nil {
		return dto.User{}, err
	}
	return dto.FromUser(user), nil
}

// Delete refuses to remove a user that is still referenced by items,
// bookings, or requests.
func (s *UserService) Delete(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		user, err := users.GetByID(userID)
		if err != nil {
			return mapUserErr(userID, err)
		}
		related, err := users.HasRelatedRecords(userID)
		if err != nil {
			return err
		}
		if related {
			return httperr.Conflict("user has related records")
		}
		return users.Delete(user)
	})
}

// GetEntity resolves the user or reports a not found error; other services
// use it to validate acting users.
func (s *UserService) GetEntity(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, mapUserErr(userID, err)
	}
	return user, nil
}

func mapUserErr(userID uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(fmt.Sprintf("not found user by id %d", userID))
	}
	return err
}
