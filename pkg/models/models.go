package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState is the filter applied to booking list queries. WAITING,
// APPROVED and REJECTED match the stored status, the rest are relative to
// the current time.
type BookingState string

const (
	StateAll         BookingState = "ALL"
	StateCurrent     BookingState = "CURRENT"
	StatePast        BookingState = "PAST"
	StateFuture      BookingState = "FUTURE"
	StateWaiting     BookingState = "WAITING"
	StateApproved    BookingState = "APPROVED"
	StateRejected    BookingState = "REJECTED"
	StateUnsupported BookingState = "UNSUPPORTED"
)

// StateFromString parses a state filter case-insensitively. Anything that is
// not a known state maps to StateUnsupported; the caller decides how to
// report the original text.
func StateFromString(text string) BookingState {
	known := []BookingState{
		StateAll, StateCurrent, StatePast, StateFuture,
		StateWaiting, StateApproved, StateRejected,
	}
	for _, s := range known {
		if strings.EqualFold(text, string(s)) {
			return s
		}
	}
	return StateUnsupported
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:80;not null"`
	Email     string `gorm:"size:120;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Item struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;not null"`
	Description string `gorm:"not null"`
	Available   *bool  `gorm:"not null"`
	OwnerID     uint   `gorm:"index;not null"`
	RequestID   *uint  `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner    User         `gorm:"foreignKey:OwnerID"`
	Request  *ItemRequest `gorm:"foreignKey:RequestID"`
	Comments []Comment    `gorm:"foreignKey:ItemID"`
}

type ItemRequest struct {
	ID          uint   `gorm:"primaryKey"`
	Description string `gorm:"not null"`
	RequesterID uint   `gorm:"index;not null"`
	CreatedAt   time.Time

	Requester User   `gorm:"foreignKey:RequesterID"`
	Items     []Item `gorm:"foreignKey:RequestID"`
}

type Booking struct {
	ID        uint          `gorm:"primaryKey"`
	StartDate time.Time     `gorm:"not null;index"`
	EndDate   time.Time     `gorm:"not null;index"`
	ItemID    uint          `gorm:"index;not null"`
	BookerID  uint          `gorm:"index;not null"`
	Status    BookingStatus `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Item   Item `gorm:"foreignKey:ItemID"`
	Booker User `gorm:"foreignKey:BookerID"`
}

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"not null"`
	ItemID    uint   `gorm:"index;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	CreatedAt time.Time

	Author User `gorm:"foreignKey:AuthorID"`
}
