package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"
	"shareit/pkg/models"
	"shareit/pkg/pagination"
	"shareit/pkg/repository"

	"gorm.io/gorm"
)

type ItemService struct {
	db       *gorm.DB
	items    repository.ItemRepository
	users    *UserService
	bookings *BookingService
	requests *RequestService
}

func NewItemService(db *gorm.DB, items repository.ItemRepository, users *UserService, bookings *BookingService, requests *RequestService) *ItemService {
	return &ItemService{db: db, items: items, users: users, bookings: bookings, requests: requests}
}

func (s *ItemService) Create(in *dto.CreateItemInput, ownerID uint) (dto.Item, error) {
	if fields := in.Validate(); len(fields) > 0 {
		return dto.Item{}, httperr.Validation(fields)
	}
	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		owner, err := s.users.GetEntity(ownerID)
		if err != nil {
			return err
		}
		item.OwnerID = owner.ID
		if in.RequestID != nil {
			request, err := s.requests.GetEntity(*in.RequestID)
			if err != nil {
				return err
			}
			item.RequestID = &request.ID
		}
		return s.items.WithTx(tx).Create(item)
	})
	if err != nil {
		return dto.Item{}, err
	}
	return dto.FromItem(item), nil
}

// Update lets only the owner change an item; blank name or description in
// the patch is ignored rather than rejected.
func (s *ItemService) Update(itemID, userID uint, in *dto.UpdateItemInput) (dto.Item, error) {
	var item *models.Item
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := s.items.WithTx(tx)
		var err error
		item, err = items.GetByID(itemID)
		if err != nil {
			return mapItemErr(itemID, err)
		}
		if item.OwnerID != userID {
			return httperr.Forbidden(fmt.Sprintf("forbidden item #%d", itemID))
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
			item.Name = *in.Name
		}
		if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
			item.Description = *in.Description
		}
		if in.Available != nil {
			item.Available = in.Available
		}
		return items.Save(item)
	})
	if err != nil {
		return dto.Item{}, err
	}
	return dto.FromItem(item), nil
}

// GetByID returns the detail view. The last/next booking annotation is
// omitted when the viewer has booked this item.
func (s *ItemService) GetByID(itemID, viewerID uint) (dto.ItemAdvanced, error) {
	item, err := s.items.GetByID(itemID)
	if err != nil {
		return dto.ItemAdvanced{}, mapItemErr(itemID, err)
	}
	now := time.Now()
	isBooker, err := s.bookings.IsBookerOfItem(viewerID, itemID)
	if err != nil {
		return dto.ItemAdvanced{}, err
	}
	var last, next *models.Booking
	if !isBooker {
		if last, err = s.bookings.Last(itemID, now); err != nil {
			return dto.ItemAdvanced{}, err
		}
		if next, err = s.bookings.Next(itemID, now); err != nil {
			return dto.ItemAdvanced{}, err
		}
	}
	return dto.FromItemAdvanced(item, last, next), nil
}

func (s *ItemService) ListByOwner(from, size int, ownerID uint) ([]dto.ItemAdvanced, error) {
	page, err := pagination.FromSize(from, size)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ownerID, page)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ItemAdvanced, len(items))
	for i := range items {
		last, err := s.bookings.Last(items[i].ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.Next(items[i].ID, now)
		if err != nil {
			return nil, err
		}
		out[i] = dto.FromItemAdvanced(&items[i], last, next)
	}
	return out, nil
}

// Search returns available items matching text. Blank text means an empty
// result, never the whole catalog.
func (s *ItemService) Search(from, size int, text string) ([]dto.Item, error) {
	page, err := pagination.FromSize(from, size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []dto.Item{}, nil
	}
	items, err := s.items.Search(text, page)
	if err != nil {
		return nil, err
	}
	return dto.FromItems(items), nil
}

func mapItemErr(itemID uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(fmt.Sprintf("not found item #%d", itemID))
	}
	return err
}
