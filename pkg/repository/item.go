package repository

import (
	"strings"

	"shareit/pkg/models"
	"shareit/pkg/pagination"

	"gorm.io/gorm"
)

type ItemRepository interface {
	WithTx(tx *gorm.DB) ItemRepository
	Create(item *models.Item) error
	GetByID(id uint) (*models.Item, error)
	Save(item *models.Item) error
	ListByOwner(ownerID uint, page pagination.Page) ([]models.Item, error)
	Search(text string, page pagination.Page) ([]models.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) WithTx(tx *gorm.DB) ItemRepository {
	return &itemRepository{db: tx}
}

func (r *itemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.
		Preload("Comments").
		Preload("Comments.Author").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Save(item *models.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepository) ListByOwner(ownerID uint, page pagination.Page) ([]models.Item, error) {
	var items []models.Item
	err := r.db.Scopes(page.Scope).
		Preload("Comments").
		Preload("Comments.Author").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Search matches available items whose name or description contains text,
// case-insensitively.
func (r *itemRepository) Search(text string, page pagination.Page) ([]models.Item, error) {
	pattern := "%" + strings.ToUpper(text) + "%"
	var items []models.Item
	err := r.db.Scopes(page.Scope).
		Where("available = ? AND (upper(name) LIKE ? OR upper(description) LIKE ?)",
			true, pattern, pattern).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
