package service

import (
	"errors"
	"fmt"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"
	"shareit/pkg/models"
	"shareit/pkg/pagination"
	"shareit/pkg/repository"

	"gorm.io/gorm"
)

type RequestService struct {
	db       *gorm.DB
	requests repository.RequestRepository
	users    *UserService
}

func NewRequestService(db *gorm.DB, requests repository.RequestRepository, users *UserService) *RequestService {
	return &RequestService{db: db, requests: requests, users: users}
}

func (s *RequestService) Create(in *dto.CreateRequestInput, requesterID uint) (dto.ItemRequest, error) {
	if fields := in.Validate(); len(fields) > 0 {
		return dto.ItemRequest{}, httperr.Validation(fields)
	}
	request := &models.ItemRequest{Description: in.Description}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		requester, err := s.users.GetEntity(requesterID)
		if err != nil {
			return err
		}
		request.RequesterID = requester.ID
		return s.requests.WithTx(tx).Create(request)
	})
	if err != nil {
		return dto.ItemRequest{}, err
	}
	return dto.FromItemRequest(request), nil
}

func (s *RequestService) ListByRequester(requesterID uint) ([]dto.ItemRequest, error) {
	if _, err := s.users.GetEntity(requesterID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequester(requesterID)
	if err != nil {
		return nil, err
	}
	return dto.FromItemRequests(requests), nil
}

// ListOfOthers pages through everyone else's requests, newest first.
func (s *RequestService) ListOfOthers(from, size int, requesterID uint) ([]dto.ItemRequest, error) {
	page, err := pagination.FromSize(from, size)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOfOthers(requesterID, page)
	if err != nil {
		return nil, err
	}
	return dto.FromItemRequests(requests), nil
}

func (s *RequestService) GetByID(requestID, viewerID uint) (dto.ItemRequest, error) {
	if _, err := s.users.GetEntity(viewerID); err != nil {
		return dto.ItemRequest{}, err
	}
	request, err := s.GetEntity(requestID)
	if err != nil {
		return dto.ItemRequest{}, err
	}
	return dto.FromItemRequest(request), nil
}

func (s *RequestService) GetEntity(requestID uint) (*models.ItemRequest, error) {
	request, err := s.requests.GetByID(requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound(fmt.Sprintf("not found request #%d", requestID))
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}
