package repository

import (
	"shareit/pkg/models"
	"shareit/pkg/pagination"

	"gorm.io/gorm"
)

type RequestRepository interface {
	WithTx(tx *gorm.DB) RequestRepository
	Create(request *models.ItemRequest) error
	GetByID(id uint) (*models.ItemRequest, error)
	ListByRequester(requesterID uint) ([]models.ItemRequest, error)
	// ListOfOthers returns requests made by everyone except requesterID,
	// newest first.
	ListOfOthers(requesterID uint, page pagination.Page) ([]models.ItemRequest, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) WithTx(tx *gorm.DB) RequestRepository {
	return &requestRepository{db: tx}
}

func (r *requestRepository) Create(request *models.ItemRequest) error {
	return r.db.Create(request).Error
}

func (r *requestRepository) GetByID(id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	if err := r.db.Preload("Items").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByRequester(requesterID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.
		Preload("Items").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) ListOfOthers(requesterID uint, page pagination.Page) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.Scopes(page.Scope).
		Preload("Items").
		Where("requester_id <> ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
