package service

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"shareit/pkg/database"
	"shareit/pkg/dto"
	"shareit/pkg/models"
	"shareit/pkg/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
	comments *CommentService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database; a named shared-cache DSN lets all connections in this test
	// see the same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	users := NewUserService(db, repository.NewUserRepository(db))
	requests := NewRequestService(db, repository.NewRequestRepository(db), users)
	bookings := NewBookingService(db, repository.NewBookingRepository(db), repository.NewItemRepository(db), users)
	items := NewItemService(db, repository.NewItemRepository(db), users, bookings, requests)
	comments := NewCommentService(db, repository.NewCommentRepository(db), bookings)

	return &testEnv{
		db:       db,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		comments: comments,
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string) dto.User {
	t.Helper()
	user, err := e.users.Create(&dto.CreateUserInput{Name: name, Email: email})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func (e *testEnv) createItem(t *testing.T, ownerID uint, name string, available bool) dto.Item {
	t.Helper()
	item, err := e.items.Create(&dto.CreateItemInput{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	}, ownerID)
	if err != nil {
		t.Fatalf("failed to create item %s: %v", name, err)
	}
	return item
}

// seedBooking inserts a booking directly, bypassing the service's
// not-in-the-past validation, so past windows can be arranged.
func (e *testEnv) seedBooking(t *testing.T, itemID, bookerID uint, start, end time.Time, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		StartDate: start,
		EndDate:   end,
		ItemID:    itemID,
		BookerID:  bookerID,
		Status:    status,
	}
	if err := e.db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}
