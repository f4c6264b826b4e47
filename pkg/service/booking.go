package service

import (
	"errors"
	"fmt"
	"time"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"
	"shareit/pkg/models"
	"shareit/pkg/pagination"
	"shareit/pkg/repository"

	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: WAITING on create, one
// transition to APPROVED or REJECTED by the owner, nothing after that.
type BookingService struct {
	db       *gorm.DB
	bookings repository.BookingRepository
	items    repository.ItemRepository
	users    *UserService
}

func NewBookingService(db *gorm.DB, bookings repository.BookingRepository, items repository.ItemRepository, users *UserService) *BookingService {
	return &BookingService{db: db, bookings: bookings, items: items, users: users}
}

// Create books an item for the given window. Booking your own item reports
// not found rather than forbidden; ownership is not revealed.
func (s *BookingService) Create(in *dto.CreateBookingInput, bookerID uint) (dto.BookingAdvanced, error) {
	if fields := in.Validate(time.Now()); len(fields) > 0 {
		return dto.BookingAdvanced{}, httperr.Validation(fields)
	}

	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.items.WithTx(tx).GetByID(in.ItemID)
		if err != nil {
			return mapItemErr(in.ItemID, err)
		}
		if item.Available == nil || !*item.Available {
			return httperr.BadRequest(fmt.Sprintf("unavailable item #%d", in.ItemID))
		}
		booker, err := s.users.GetEntity(bookerID)
		if err != nil {
			return err
		}
		if item.OwnerID == bookerID {
			return httperr.NotFound("not found item of user")
		}
		booking = &models.Booking{
			StartDate: *in.Start,
			EndDate:   *in.End,
			ItemID:    item.ID,
			BookerID:  booker.ID,
			Status:    models.StatusWaiting,
		}
		if err := s.bookings.WithTx(tx).Create(booking); err != nil {
			return err
		}
		booking.Item = *item
		booking.Booker = *booker
		return nil
	})
	if err != nil {
		return dto.BookingAdvanced{}, err
	}
	return dto.FromBookingAdvanced(booking), nil
}

// Approve resolves a WAITING booking. The booking row is locked for the
// transaction so concurrent approvals cannot both pass the status check.
func (s *BookingService) Approve(ownerID, bookingID uint, approved bool) (dto.BookingAdvanced, error) {
	var booking *models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bookings := s.bookings.WithTx(tx)
		var err error
		booking, err = bookings.GetByIDForUpdate(bookingID)
		if err != nil {
			return mapBookingErr(bookingID, err)
		}
		if booking.Status != models.StatusWaiting {
			return httperr.BadRequest("booking already approved or rejected")
		}
		if booking.Item.OwnerID != ownerID {
			return httperr.NotFound(fmt.Sprintf("not found booking #%d", bookingID))
		}
		if approved {
			booking.Status = models.StatusApproved
		} else {
			booking.Status = models.StatusRejected
		}
		return bookings.Save(booking)
	})
	if err != nil {
		return dto.BookingAdvanced{}, err
	}
	return dto.FromBookingAdvanced(booking), nil
}

// GetByViewer returns the booking only to its booker or the item's owner;
// anyone else learns nothing beyond "not found".
func (s *BookingService) GetByViewer(viewerID, bookingID uint) (dto.BookingAdvanced, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return dto.BookingAdvanced{}, mapBookingErr(bookingID, err)
	}
	if booking.Item.OwnerID != viewerID && booking.BookerID != viewerID {
		return dto.BookingAdvanced{}, httperr.NotFound(fmt.Sprintf("not found booking #%d", bookingID))
	}
	return dto.FromBookingAdvanced(booking), nil
}

func (s *BookingService) ListByBooker(from, size int, bookerID uint, stateText string) ([]dto.BookingAdvanced, error) {
	state, page, err := s.prepareList(from, size, bookerID, stateText)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByBooker(bookerID, state, time.Now(), page)
	if err != nil {
		return nil, err
	}
	return dto.FromBookingsAdvanced(bookings), nil
}

func (s *BookingService) ListByOwner(from, size int, ownerID uint, stateText string) ([]dto.BookingAdvanced, error) {
	state, page, err := s.prepareList(from, size, ownerID, stateText)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByOwner(ownerID, state, time.Now(), page)
	if err != nil {
		return nil, err
	}
	return dto.FromBookingsAdvanced(bookings), nil
}

func (s *BookingService) prepareList(from, size int, identityID uint, stateText string) (models.BookingState, pagination.Page, error) {
	if _, err := s.users.GetEntity(identityID); err != nil {
		return "", pagination.Page{}, err
	}
	state := models.StateFromString(stateText)
	if state == models.StateUnsupported {
		return "", pagination.Page{}, httperr.UnsupportedState("Unknown state: " + stateText)
	}
	page, err := pagination.FromSize(from, size)
	if err != nil {
		return "", pagination.Page{}, err
	}
	return state, page, nil
}

// Last returns the most recent booking ending at or before asOf, Next the
// most recent one ending at or after it. Both may be nil.
func (s *BookingService) Last(itemID uint, asOf time.Time) (*models.Booking, error) {
	return s.bookings.Last(itemID, asOf)
}

func (s *BookingService) Next(itemID uint, asOf time.Time) (*models.Booking, error) {
	return s.bookings.Next(itemID, asOf)
}

// IsBookerOfItem reports whether the user has any booking of the item.
func (s *BookingService) IsBookerOfItem(bookerID, itemID uint) (bool, error) {
	return s.bookings.ExistsByItemAndBooker(itemID, bookerID)
}

// FindApprovedCompleted returns the earliest-starting APPROVED booking of the
// item by the booker, or a bad request error when none exists. Comment
// creation is gated on it.
func (s *BookingService) FindApprovedCompleted(bookerID, itemID uint) (*models.Booking, error) {
	booking, err := s.bookings.FirstApproved(bookerID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.BadRequest("has not approved booking")
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func mapBookingErr(bookingID uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(fmt.Sprintf("not found booking #%d", bookingID))
	}
	return err
}
