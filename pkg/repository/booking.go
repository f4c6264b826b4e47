package repository

import (
	"errors"
	"time"

	"shareit/pkg/models"
	"shareit/pkg/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	WithTx(tx *gorm.DB) BookingRepository
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	// GetByIDForUpdate locks the booking row for the rest of the enclosing
	// transaction.
	GetByIDForUpdate(id uint) (*models.Booking, error)
	Save(booking *models.Booking) error
	ListByBooker(bookerID uint, state models.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error)
	ListByOwner(ownerID uint, state models.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error)
	Last(itemID uint, asOf time.Time) (*models.Booking, error)
	Next(itemID uint, asOf time.Time) (*models.Booking, error)
	FirstApproved(bookerID, itemID uint) (*models.Booking, error)
	ExistsByItemAndBooker(itemID, bookerID uint) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) WithTx(tx *gorm.DB) BookingRepository {
	return &bookingRepository{db: tx}
}

func (r *bookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.
		Preload("Item").
		Preload("Item.Owner").
		Preload("Booker").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByIDForUpdate(id uint) (*models.Booking, error) {
	q := r.db
	// sqlite has no row locks and rejects FOR UPDATE; its writes are
	// serialized anyway.
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var booking models.Booking
	err := q.First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.
		Preload("Owner").
		First(&booking.Item, booking.ItemID).Error; err != nil {
		return nil, err
	}
	if err := r.db.First(&booking.Booker, booking.BookerID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Save(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

func (r *bookingRepository) ListByBooker(bookerID uint, state models.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error) {
	q := r.db.Scopes(page.Scope).
		Preload("Item").
		Preload("Item.Owner").
		Preload("Booker").
		Where("booker_id = ?", bookerID).
		Order("end_date DESC")
	q = filterByState(q, "", state, now)

	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByOwner(ownerID uint, state models.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error) {
	q := r.db.Scopes(page.Scope).
		Preload("Item").
		Preload("Item.Owner").
		Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Order("bookings.end_date DESC")
	q = filterByState(q, "bookings.", state, now)

	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func filterByState(q *gorm.DB, prefix string, state models.BookingState, now time.Time) *gorm.DB {
	switch state {
	case models.StateAll:
		return q
	case models.StateCurrent:
		return q.Where("? BETWEEN "+prefix+"start_date AND "+prefix+"end_date", now)
	case models.StatePast:
		return q.Where(prefix+"end_date < ?", now)
	case models.StateFuture:
		return q.Where(prefix+"start_date > ?", now)
	default:
		return q.Where(prefix+"status = ?", models.BookingStatus(state))
	}
}

func (r *bookingRepository) Last(itemID uint, asOf time.Time) (*models.Booking, error) {
	return r.firstMatching("item_id = ? AND end_date <= ?", itemID, asOf)
}

func (r *bookingRepository) Next(itemID uint, asOf time.Time) (*models.Booking, error) {
	return r.firstMatching("item_id = ? AND end_date >= ?", itemID, asOf)
}

func (r *bookingRepository) firstMatching(cond string, args ...interface{}) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where(cond, args...).Order("end_date DESC").First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FirstApproved(bookerID, itemID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.
		Preload("Item").
		Preload("Booker").
		Where("item_id = ? AND booker_id = ? AND status = ?", itemID, bookerID, models.StatusApproved).
		Order("start_date ASC").
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ExistsByItemAndBooker(itemID, bookerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("item_id = ? AND booker_id = ?", itemID, bookerID).
		Count(&count).Error
	return count > 0, err
}
