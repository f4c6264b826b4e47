package service

import (
	"strings"
	"time"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"
	"shareit/pkg/models"
	"shareit/pkg/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	db       *gorm.DB
	comments repository.CommentRepository
	bookings *BookingService
}

func NewCommentService(db *gorm.DB, comments repository.CommentRepository, bookings *BookingService) *CommentService {
	return &CommentService{db: db, comments: comments, bookings: bookings}
}

// Create records feedback on an item. The author must hold an APPROVED
// booking of the item whose start is already in the past.
func (s *CommentService) Create(in *dto.CreateCommentInput, itemID, authorID uint) (dto.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return dto.Comment{}, httperr.BadRequest("empty comment")
	}
	var comment *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookings.FindApprovedCompleted(authorID, itemID)
		if err != nil {
			return err
		}
		if booking.StartDate.After(time.Now()) {
			return httperr.BadRequest("booking not completed")
		}
		comment = &models.Comment{
			Text:     in.Text,
			ItemID:   booking.ItemID,
			AuthorID: booking.BookerID,
		}
		if err := s.comments.WithTx(tx).Create(comment); err != nil {
			return err
		}
		comment.Author = booking.Booker
		return nil
	})
	if err != nil {
		return dto.Comment{}, err
	}
	return dto.FromComment(comment), nil
}
