// Package dto holds the wire shapes of the API and their mappers. The same
// input types are bound by the gateway and the server, so both processes
// validate identically.
package dto

import (
	"time"

	"shareit/pkg/models"
)

type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Item struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

// ItemAdvanced is the item detail view: the plain item plus its comments and
// the bookings bracketing now.
type ItemAdvanced struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   *bool     `json:"available"`
	LastBooking *Booking  `json:"lastBooking"`
	NextBooking *Booking  `json:"nextBooking"`
	Comments    []Comment `json:"comments"`
	RequestID   *uint     `json:"requestId,omitempty"`
}

type Booking struct {
	ID       uint                 `json:"id"`
	Status   models.BookingStatus `json:"status"`
	Start    time.Time            `json:"start"`
	End      time.Time            `json:"end"`
	ItemID   uint                 `json:"itemId"`
	BookerID uint                 `json:"bookerId"`
}

type BookingAdvanced struct {
	ID     uint                 `json:"id"`
	Status models.BookingStatus `json:"status"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Booker User                 `json:"booker"`
	Item   Item                 `json:"item"`
}

type Comment struct {
	ID         uint      `json:"id"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

type ItemRequest struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Items       []Item    `json:"items"`
	Created     time.Time `json:"created"`
}

func FromUser(u *models.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func FromUsers(users []models.User) []User {
	out := make([]User, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return out
}

func FromItem(i *models.Item) Item {
	return Item{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

func FromItems(items []models.Item) []Item {
	out := make([]Item, len(items))
	for i := range items {
		out[i] = FromItem(&items[i])
	}
	return out
}

func FromItemAdvanced(i *models.Item, last, next *models.Booking) ItemAdvanced {
	return ItemAdvanced{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		LastBooking: fromBookingOrNil(last),
		NextBooking: fromBookingOrNil(next),
		Comments:    FromComments(i.Comments),
		RequestID:   i.RequestID,
	}
}

func FromBooking(b *models.Booking) Booking {
	return Booking{
		ID:       b.ID,
		Status:   b.Status,
		Start:    b.StartDate,
		End:      b.EndDate,
		ItemID:   b.ItemID,
		BookerID: b.BookerID,
	}
}

func fromBookingOrNil(b *models.Booking) *Booking {
	if b == nil {
		return nil
	}
	out := FromBooking(b)
	return &out
}

func FromBookingAdvanced(b *models.Booking) BookingAdvanced {
	return BookingAdvanced{
		ID:     b.ID,
		Status: b.Status,
		Start:  b.StartDate,
		End:    b.EndDate,
		Booker: FromUser(&b.Booker),
		Item:   FromItem(&b.Item),
	}
}

func FromBookingsAdvanced(bookings []models.Booking) []BookingAdvanced {
	out := make([]BookingAdvanced, len(bookings))
	for i := range bookings {
		out[i] = FromBookingAdvanced(&bookings[i])
	}
	return out
}

func FromComment(c *models.Comment) Comment {
	return Comment{
		ID:         c.ID,
		AuthorName: c.Author.Name,
		Text:       c.Text,
		Created:    c.CreatedAt,
	}
}

func FromComments(comments []models.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for i := range comments {
		out = append(out, FromComment(&comments[i]))
	}
	return out
}

func FromItemRequest(r *models.ItemRequest) ItemRequest {
	return ItemRequest{
		ID:          r.ID,
		Description: r.Description,
		Items:       FromItems(r.Items),
		Created:     r.CreatedAt,
	}
}

func FromItemRequests(requests []models.ItemRequest) []ItemRequest {
	out := make([]ItemRequest, len(requests))
	for i := range requests {
		out[i] = FromItemRequest(&requests[i])
	}
	return out
}
