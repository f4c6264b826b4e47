package server

import (
	"net/http"
	"strconv"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) createBooking(c *gin.Context) {
	bookerID, ok := actingUser(c)
	if !ok {
		return
	}
	var in dto.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	booking, err := h.bookings.Create(&in, bookerID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) approveBooking(c *gin.Context) {
	ownerID, ok := actingUser(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}
	booking, err := h.bookings.Approve(ownerID, bookingID, approved)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) getBookingByID(c *gin.Context) {
	viewerID, ok := actingUser(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	booking, err := h.bookings.GetByViewer(viewerID, bookingID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handlers) getBookingsOfBooker(c *gin.Context) {
	bookerID, ok := actingUser(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	bookings, err := h.bookings.ListByBooker(from, size, bookerID, c.DefaultQuery("state", "ALL"))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handlers) getBookingsOfOwner(c *gin.Context) {
	ownerID, ok := actingUser(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	bookings, err := h.bookings.ListByOwner(from, size, ownerID, c.DefaultQuery("state", "ALL"))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
